package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// --- Mock implementations shared by service tests ---

// mockDrive implements driven.DriveService for testing.
// Change and listing pages are keyed by the page token that requests them.
type mockDrive struct {
	mu sync.Mutex

	startCursor string
	startErr    error

	changePages map[string]*driven.ChangesPage
	changesErr  error
	listPages   map[string]*driven.EntitiesPage
	listErr     error

	exports map[string][]byte
	raw     map[string][]byte
	itemErr map[string]error

	// block, when set, is waited on by ListChanges and ListAll.
	block chan struct{}

	changeTokens []string
	listTokens   []string
	exportCalls  []string
	downloads    []string
}

func newMockDrive() *mockDrive {
	return &mockDrive{
		changePages: make(map[string]*driven.ChangesPage),
		listPages:   make(map[string]*driven.EntitiesPage),
		exports:     make(map[string][]byte),
		raw:         make(map[string][]byte),
		itemErr:     make(map[string]error),
	}
}

func (m *mockDrive) GetStartCursor(_ context.Context, _ int) (string, error) {
	if m.startErr != nil {
		return "", m.startErr
	}
	return m.startCursor, nil
}

func (m *mockDrive) ListChanges(ctx context.Context, req driven.ListRequest) (*driven.ChangesPage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.changeTokens = append(m.changeTokens, req.PageToken)
	if m.changesErr != nil {
		return nil, m.changesErr
	}
	page, ok := m.changePages[req.PageToken]
	if !ok {
		return nil, errors.New("unexpected change page token " + req.PageToken)
	}
	return page, nil
}

func (m *mockDrive) ListAll(ctx context.Context, req driven.ListRequest) (*driven.EntitiesPage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listTokens = append(m.listTokens, req.PageToken)
	if m.listErr != nil {
		return nil, m.listErr
	}
	page, ok := m.listPages[req.PageToken]
	if !ok {
		return nil, errors.New("unexpected list page token " + req.PageToken)
	}
	return page, nil
}

func (m *mockDrive) ExportAs(_ context.Context, fileID, targetMimeType string, _ int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exportCalls = append(m.exportCalls, fileID+":"+targetMimeType)
	if err := m.itemErr[fileID]; err != nil {
		return nil, err
	}
	return m.exports[fileID], nil
}

func (m *mockDrive) DownloadRaw(_ context.Context, fileID string, _ int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.downloads = append(m.downloads, fileID)
	if err := m.itemErr[fileID]; err != nil {
		return nil, err
	}
	return m.raw[fileID], nil
}

func (m *mockDrive) wait(ctx context.Context) error {
	if m.block == nil {
		return nil
	}
	select {
	case <-m.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// mockPDF implements driven.TextExtractor. The document bytes are the text;
// results can be overridden per document content.
type mockPDF struct {
	errs map[string]error
	text map[string]string
}

func (p *mockPDF) SupportedMIMETypes() []string {
	return []string{domain.MimeTypePDF}
}

func (p *mockPDF) ExtractText(_ context.Context, data []byte, _ int) (string, error) {
	key := string(data)
	text := key
	if t, ok := p.text[key]; ok {
		text = t
	}
	return text, p.errs[key]
}

// testConfig returns a config with small values for tests.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PageSize = 10
	cfg.MaxRetries = 1
	cfg.Workers = 2
	return cfg
}

// newFile builds a file entity for tests.
func newFile(id, name string, parents ...string) domain.Entity {
	return domain.Entity{
		ID:       id,
		Name:     name,
		MimeType: "text/plain",
		Parents:  parents,
	}
}

// newFolder builds a folder entity for tests.
func newFolder(id, name string, parents ...string) domain.Entity {
	return domain.Entity{
		ID:          id,
		Name:        name,
		MimeType:    domain.MimeTypeFolder,
		Parents:     parents,
		WebViewLink: "https://drive.example/" + id,
	}
}

// changeOf wraps an entity in a change record.
func changeOf(e domain.Entity) domain.ChangeRecord {
	return domain.ChangeRecord{ChangeType: domain.ChangeTypeFile, EntityID: e.ID, Entity: &e}
}

// removalOf builds a removal change record.
func removalOf(id string) domain.ChangeRecord {
	return domain.ChangeRecord{ChangeType: domain.ChangeTypeFile, Removed: true, EntityID: id}
}
