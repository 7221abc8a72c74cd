package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GyanFactory/WizardChatUI-sub000/core"
)

func TestDocumentSerialization(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("full document", func(t *testing.T) {
		doc := &core.Document{
			Id:         42,
			ProjectId:  7,
			Filename:   "faq.pdf",
			Contents:   "Returns are accepted within 30 days.",
			Vector:     []float32{0.25, -0.5, 1},
			Status:     core.StatusCompleted,
			InsertedAt: now,
			UpdatedAt:  now,
		}

		got, err := UnmarshalDocument(MarshalDocument(doc))
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("document without vector", func(t *testing.T) {
		doc := &core.Document{
			Id:         1,
			ProjectId:  1,
			Filename:   "notes.txt",
			Contents:   "pending extraction",
			Status:     core.StatusPending,
			InsertedAt: now,
			UpdatedAt:  now,
		}

		got, err := UnmarshalDocument(MarshalDocument(doc))
		require.NoError(t, err)
		assert.Nil(t, got.Vector)
		assert.Equal(t, doc, got)
	})

	t.Run("truncated data", func(t *testing.T) {
		data := MarshalDocument(&core.Document{
			Id: 1, ProjectId: 1, Filename: "x", Contents: "some contents",
			Status: core.StatusCompleted, InsertedAt: now, UpdatedAt: now,
		})
		_, err := UnmarshalDocument(data[:len(data)/2])
		assert.Error(t, err)
	})
}

func TestQAItemSerialization(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	item := &core.QAItem{
		Id:          9,
		ProjectId:   7,
		DocumentId:  42,
		Question:    "What is the return window?",
		Answer:      "30 days",
		Vector:      []float32{1, 0, 0},
		IsGenerated: true,
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	got, err := UnmarshalQAItem(MarshalQAItem(item))
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestIDSerialization(t *testing.T) {
	for _, id := range []core.ID{0, 1, 300, 1 << 40} {
		got, err := UnmarshalID(MarshalID(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}
