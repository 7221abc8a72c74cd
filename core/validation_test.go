package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				Id:        1,
				ProjectId: 7,
				Filename:  "handbook.pdf",
				Contents:  "Our return policy allows 30-day refunds.",
				Status:    StatusCompleted,
			},
			wantErr: nil,
		},
		{
			name: "valid document with nil vector",
			doc: &Document{
				ProjectId: 7,
				Contents:  "text",
				Status:    StatusPending,
			},
			wantErr: nil,
		},
		{
			name: "valid document with ID 0",
			doc: &Document{
				Id:        0,
				ProjectId: 7,
				Contents:  "text",
				Status:    StatusPending,
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty contents",
			doc: &Document{
				ProjectId: 7,
				Contents:  "",
				Status:    StatusPending,
			},
			wantErr: ErrEmptyContents,
		},
		{
			name: "whitespace-only contents",
			doc: &Document{
				ProjectId: 7,
				Contents:  "  \n\t  ",
				Status:    StatusPending,
			},
			wantErr: ErrEmptyContents,
		},
		{
			name: "missing project reference",
			doc: &Document{
				Contents: "text",
				Status:   StatusPending,
			},
			wantErr: ErrMissingProject,
		},
		{
			name: "invalid status",
			doc: &Document{
				ProjectId: 7,
				Contents:  "text",
				Status:    ProcessingStatus(99),
			},
			wantErr: ErrInvalidProcessingStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("ValidateDocument() error = %v does not wrap ErrInvalidDocument", err)
			}
		})
	}
}

func TestValidateQAItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *QAItem
		wantErr error
	}{
		{
			name: "valid generated item",
			item: &QAItem{
				ProjectId:   7,
				DocumentId:  3,
				Question:    "What is the return window?",
				Answer:      "30 days",
				IsGenerated: true,
			},
			wantErr: nil,
		},
		{
			name: "valid manual item without vector",
			item: &QAItem{
				ProjectId:  7,
				DocumentId: 3,
				Question:   "Do you ship internationally?",
				Answer:     "Yes, to most countries.",
			},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidQAItem,
		},
		{
			name: "empty question",
			item: &QAItem{
				ProjectId:  7,
				DocumentId: 3,
				Answer:     "30 days",
			},
			wantErr: ErrEmptyQuestion,
		},
		{
			name: "empty answer",
			item: &QAItem{
				ProjectId:  7,
				DocumentId: 3,
				Question:   "What is the return window?",
			},
			wantErr: ErrEmptyAnswer,
		},
		{
			name: "missing project reference",
			item: &QAItem{
				DocumentId: 3,
				Question:   "q",
				Answer:     "a",
			},
			wantErr: ErrMissingProject,
		},
		{
			name: "missing document reference",
			item: &QAItem{
				ProjectId: 7,
				Question:  "q",
				Answer:    "a",
			},
			wantErr: ErrMissingDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQAItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQAItem() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQAItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProcessingStatus(t *testing.T) {
	for _, status := range []ProcessingStatus{StatusPending, StatusCompleted, StatusFailed} {
		if err := ValidateProcessingStatus(status); err != nil {
			t.Errorf("ValidateProcessingStatus(%v) error = %v", status, err)
		}
	}

	if err := ValidateProcessingStatus(ProcessingStatus(0)); !errors.Is(err, ErrInvalidProcessingStatus) {
		t.Errorf("ValidateProcessingStatus(0) error = %v, want ErrInvalidProcessingStatus", err)
	}
}
