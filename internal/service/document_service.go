package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
	"taskpro-api/internal/store"
)

// DocumentService defines the interface for the document store.
type DocumentService interface {
	ListDocuments(ctx context.Context) ([]domain.Document, error)
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)
	SaveDocument(ctx context.Context, req *dto.SaveDocumentRequest) (*domain.Document, error)
	SaveContent(ctx context.Context, documentID string, req *dto.SaveContentRequest) (*domain.Document, error)
	DeleteDocument(ctx context.Context, documentID string) error
}

// documentServiceImpl is the implementation of DocumentService
type documentServiceImpl struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService(st *store.Store, logger *zap.Logger) DocumentService {
	return &documentServiceImpl{store: st, logger: logger, now: time.Now}
}

// ListDocuments returns all documents in stored order.
func (s *documentServiceImpl) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.store.State().CloneDocuments(), nil
}

// GetDocument returns one document by id.
func (s *documentServiceImpl) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	for _, doc := range s.store.State().Documents {
		if doc.ID == documentID {
			doc = doc.Clone()
			return &doc, nil
		}
	}
	return nil, response.NewNotFoundError("Document not found")
}

// SaveDocument creates a document (empty id) or replaces an existing one's
// metadata and content. Either way LastModified moves to now.
func (s *documentServiceImpl) SaveDocument(ctx context.Context, req *dto.SaveDocumentRequest) (*domain.Document, error) {
	docType := req.Type
	if docType == "" {
		docType = domain.DocumentTypeDoc
	}
	if !docType.Valid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown document type", string(docType))
	}

	var saved domain.Document
	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		doc := domain.Document{
			ID:           req.ID,
			Name:         req.Name,
			Type:         docType,
			Content:      req.Content,
			LastModified: s.now().UTC(),
			SharedWith:   append([]string(nil), req.SharedWith...),
			Location:     req.Location,
		}
		if doc.SharedWith == nil {
			doc.SharedWith = []string{}
		}

		next := state
		next.Documents = state.CloneDocuments()
		if doc.ID == "" {
			doc.ID = "doc-" + uuid.NewString()
			next.Documents = append(next.Documents, doc)
		} else {
			found := false
			for i, existing := range next.Documents {
				if existing.ID == doc.ID {
					next.Documents[i] = doc
					found = true
					break
				}
			}
			if !found {
				return state, response.NewNotFoundError("Document not found")
			}
		}
		saved = doc
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// SaveContent replaces only the document body, the editor's auto-save path.
func (s *documentServiceImpl) SaveContent(ctx context.Context, documentID string, req *dto.SaveContentRequest) (*domain.Document, error) {
	var saved domain.Document
	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		next := state
		next.Documents = state.CloneDocuments()
		for i, doc := range next.Documents {
			if doc.ID != documentID {
				continue
			}
			doc = doc.Clone()
			doc.Content = req.Content
			doc.LastModified = s.now().UTC()
			next.Documents[i] = doc
			saved = doc
			return next, nil
		}
		return state, response.NewNotFoundError("Document not found")
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteDocument removes a document.
func (s *documentServiceImpl) DeleteDocument(ctx context.Context, documentID string) error {
	return s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		next := state
		next.Documents = make([]domain.Document, 0, len(state.Documents))
		found := false
		for _, doc := range state.Documents {
			if doc.ID == documentID {
				found = true
				continue
			}
			next.Documents = append(next.Documents, doc)
		}
		if !found {
			return state, response.NewNotFoundError("Document not found")
		}
		return next, nil
	})
}
