package upload

import (
	"errors"
	"testing"

	"guidesync/internal/config"
	"guidesync/internal/domain"
)

func TestValidateMeta(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		size     int64
		wantErr  bool
	}{
		{
			name:     "valid pdf",
			fileName: "paper.pdf",
			mimeType: MimePDF,
			size:     2 << 20,
			wantErr:  false,
		},
		{
			name:     "valid docx",
			fileName: "paper.docx",
			mimeType: MimeDOCX,
			size:     512,
			wantErr:  false,
		},
		{
			name:     "valid doc",
			fileName: "paper.doc",
			mimeType: MimeDOC,
			size:     512,
			wantErr:  false,
		},
		{
			name:     "rejected mime type",
			fileName: "paper.txt",
			mimeType: "text/plain",
			size:     512,
			wantErr:  true,
		},
		{
			name:     "oversized file rejected locally",
			fileName: "huge.pdf",
			mimeType: MimePDF,
			size:     60 << 20, // 60MB > 50MB ceiling
			wantErr:  true,
		},
		{
			name:     "exactly at ceiling accepted",
			fileName: "big.pdf",
			mimeType: MimePDF,
			size:     config.MaxUploadBytes,
			wantErr:  false,
		},
		{
			name:     "empty file rejected",
			fileName: "empty.pdf",
			mimeType: MimePDF,
			size:     0,
			wantErr:  true,
		},
		{
			name:     "missing file name",
			fileName: "  ",
			mimeType: MimePDF,
			size:     512,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMeta(tt.fileName, tt.mimeType, tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateMeta() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error should match domain.ErrValidation, got %v", err)
			}
		})
	}
}

func TestMimeTypeForFile(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"paper.pdf", MimePDF},
		{"Paper.PDF", MimePDF},
		{"thesis.docx", MimeDOCX},
		{"draft.doc", MimeDOC},
		{"notes.txt", ""},
		{"noextension", ""},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			if got := MimeTypeForFile(tt.fileName); got != tt.want {
				t.Errorf("MimeTypeForFile(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}
