package services

import (
	"errors"
	"testing"

	"github.com/ochairo/alignscan/internal/domain/entities"
)

func TestUploadValidator_Validate(t *testing.T) {
	v := NewUploadValidator(nil, nil)
	payload := []byte("PK\x03\x04")

	tests := []struct {
		name    string
		pkg     *entities.UploadedPackage
		wantErr bool
		wantMsg string
	}{
		{
			name: "apk media type",
			pkg:  &entities.UploadedPackage{Filename: "release", MediaType: "application/vnd.android.package-archive", Data: payload},
		},
		{
			name: "zip media type with parameters",
			pkg:  &entities.UploadedPackage{Filename: "bundle", MediaType: "Application/Zip; charset=binary", Data: payload},
		},
		{
			name: "apk extension with generic media type",
			pkg:  &entities.UploadedPackage{Filename: "app-release.apk", MediaType: "application/octet-stream", Data: payload},
		},
		{
			name: "zip extension without media type",
			pkg:  &entities.UploadedPackage{Filename: "app.zip", Data: payload},
		},
		{
			name:    "text file",
			pkg:     &entities.UploadedPackage{Filename: "app.txt", MediaType: "text/plain", Data: payload},
			wantErr: true,
			wantMsg: "Invalid file type. Please upload an APK or ZIP file.",
		},
		{
			name:    "extension match is case sensitive",
			pkg:     &entities.UploadedPackage{Filename: "APP.APK", MediaType: "application/octet-stream", Data: payload},
			wantErr: true,
			wantMsg: "Invalid file type. Please upload an APK or ZIP file.",
		},
		{
			name:    "nil package",
			pkg:     nil,
			wantErr: true,
			wantMsg: "No file provided",
		},
		{
			name:    "empty payload",
			pkg:     &entities.UploadedPackage{Filename: "app.apk", MediaType: "application/vnd.android.package-archive"},
			wantErr: true,
			wantMsg: "No file provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.pkg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, entities.ErrBadInput) {
				t.Errorf("Validate() error = %v, want BadInput", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Validate() message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestUploadValidator_CustomLists(t *testing.T) {
	v := NewUploadValidator([]string{"application/x-aab"}, []string{".aab"})

	if err := v.Validate(&entities.UploadedPackage{Filename: "app.aab", Data: []byte{1}}); err != nil {
		t.Errorf("Validate(.aab) error = %v", err)
	}
	if err := v.Validate(&entities.UploadedPackage{Filename: "x", MediaType: "application/x-aab", Data: []byte{1}}); err != nil {
		t.Errorf("Validate(application/x-aab) error = %v", err)
	}
	if err := v.Validate(&entities.UploadedPackage{Filename: "app.apk", MediaType: "application/zip", Data: []byte{1}}); err == nil {
		t.Error("Validate(app.apk) should fail when .apk is not configured")
	}
}
