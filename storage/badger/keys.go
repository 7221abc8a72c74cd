package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/GyanFactory/WizardChatUI-sub000/core"
)

// Key prefixes for different data types
const (
	documentPrefix        = "docrec"
	documentProjectPrefix = "docproj"
	documentIDSeq         = "docrecseq"
	qaItemPrefix          = "qarec"
	qaItemDocPrefix       = "qadoc"
	qaItemIDSeq           = "qarecseq"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeDocumentProjectKey generates a composite key for the project index.
// Format: prefix:projectID:documentID
func makeDocumentProjectKey(projectID, documentID core.ID) []byte {
	prefix := []byte(documentProjectPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	// BigEndian so lexicographic iteration walks IDs in ascending order
	binary.BigEndian.PutUint64(buf[offset:], uint64(projectID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makePartialDocumentProjectKey generates a partial key for project scans.
// Format: prefix:projectID
func makePartialDocumentProjectKey(projectID core.ID) []byte {
	prefix := []byte(documentProjectPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(projectID))
	return buf
}

// makeQAItemKey generates a key for a Q&A item by ID.
func makeQAItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", qaItemPrefix, id))
}

// makeQAItemDocKey generates a composite key for the document index.
// Format: prefix:documentID:itemID
func makeQAItemDocKey(documentID, itemID core.ID) []byte {
	prefix := []byte(qaItemDocPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(itemID))
	return buf
}

// makePartialQAItemDocKey generates a partial key for document scans.
// Format: prefix:documentID
func makePartialQAItemDocKey(documentID core.ID) []byte {
	prefix := []byte(qaItemDocPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}
