package sync

import (
	"context"

	"github.com/openmemo/memosync/app/notion"
)

// NotionAPI is the capability surface the orchestrator needs from the
// remote store. Defined here so the pipeline can be tested with a fake.
type NotionAPI interface {
	CreatePage(ctx context.Context, properties notion.Properties, children []notion.Block) (string, error)
	UpdatePage(ctx context.Context, pageID string, properties notion.Properties) error
	FindPageBySourceFile(ctx context.Context, sourceFile string) (string, error)
}

var _ NotionAPI = (*notion.Client)(nil)
