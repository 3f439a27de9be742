package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies where a retrieval failed.
type ErrorKind string

const (
	// KindTranslation covers schema fetch and language-model failures on the
	// graph path.
	KindTranslation ErrorKind = "translation"
	// KindGraphExecution is a translated statement rejected by the graph store.
	KindGraphExecution ErrorKind = "graph_execution"
	// KindVectorPath is an embedding or vector store failure.
	KindVectorPath ErrorKind = "vector_path"
	// KindSerialization is a graph row value that cannot be rendered as text.
	KindSerialization ErrorKind = "serialization"
)

type RetrievalError struct {
	Kind    ErrorKind
	Stage   string
	Message string
	Cause   error
}

func (e *RetrievalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Stage, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Stage, e.Kind, e.Message)
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, stage, message string, cause error) *RetrievalError {
	return &RetrievalError{Kind: kind, Stage: stage, Message: message, Cause: cause}
}

// KindOf returns the kind of the first RetrievalError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var re *RetrievalError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return "", false
}

// IsFailOpen reports whether err is a graph-path failure that Retrieve folds
// into an empty graph contribution.
func IsFailOpen(err error) bool {
	kind, ok := KindOf(err)
	return ok && (kind == KindTranslation || kind == KindGraphExecution)
}
