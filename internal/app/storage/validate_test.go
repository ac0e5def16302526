package storage

import (
	"testing"

	"chatrelay/internal/pkg/errs"
)

func TestValidateFileType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		wantCode int // 0 means accepted
	}{
		{"png", "sticker.png", "image/png", 0},
		{"jpeg", "photo.jpg", "image/jpeg", 0},
		{"jpeg alt ext", "photo.jpeg", "image/jpeg", 0},
		{"webp", "anim.webp", "image/webp", 0},
		{"gif", "anim.gif", "image/gif", 0},
		{"mime case insensitive", "a.png", "IMAGE/PNG", 0},
		{"svg rejected", "vector.svg", "image/svg+xml", errs.ErrFileTypeInvalid},
		{"executable rejected", "evil.exe", "application/octet-stream", errs.ErrFileTypeInvalid},
		{"mismatched ext", "photo.png", "image/jpeg", errs.ErrFileTypeInvalid},
		{"no extension", "photo", "image/png", errs.ErrFileTypeInvalid},
		{"empty mime", "photo.png", "", errs.ErrFileTypeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileType(tt.fileName, tt.mimeType)

			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("expected %q/%q to be accepted, got %v", tt.fileName, tt.mimeType, err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected %q/%q to be rejected", tt.fileName, tt.mimeType)
			}
			if err.Code != tt.wantCode {
				t.Fatalf("error code = %d, want %d", err.Code, tt.wantCode)
			}
		})
	}
}

func TestValidateFileSize(t *testing.T) {
	if err := ValidateFileSize(1024); err != nil {
		t.Fatalf("1 KB rejected: %v", err)
	}
	if err := ValidateFileSize(MaxUploadSize); err != nil {
		t.Fatalf("exact limit rejected: %v", err)
	}

	if err := ValidateFileSize(MaxUploadSize + 1); err == nil {
		t.Fatal("oversize accepted")
	} else if err.Code != errs.ErrFileSizeTooLarge {
		t.Fatalf("error code = %d, want %d", err.Code, errs.ErrFileSizeTooLarge)
	}

	if err := ValidateFileSize(0); err == nil {
		t.Fatal("zero size accepted")
	}
	if err := ValidateFileSize(-1); err == nil {
		t.Fatal("negative size accepted")
	}
}
