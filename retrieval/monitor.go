package retrieval

import (
	"github.com/GyanFactory/WizardChatUI-sub000/core"
)

// Monitor provides hooks to observe the answering process.
// Implement this interface to track intermediate steps during retrieval.
type Monitor interface {
	Start(query string)
	AfterQueryEmbedding(dimensions int)
	DocumentScored(id core.ID, similarity float32)
	TopDocument(doc *core.Document, similarity float32)
	ItemEmbedded(id core.ID)
	ItemScored(id core.ID, similarity float32)
	Declined(similarity float32)
	Finish(result *AnswerResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)               {}
func (n *noopMonitor) DocumentScored(_ core.ID, _ float32)     {}
func (n *noopMonitor) TopDocument(_ *core.Document, _ float32) {}
func (n *noopMonitor) ItemEmbedded(_ core.ID)                  {}
func (n *noopMonitor) ItemScored(_ core.ID, _ float32)         {}
func (n *noopMonitor) Declined(_ float32)                      {}
func (n *noopMonitor) Finish(_ *AnswerResult)                  {}
