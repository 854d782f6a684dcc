package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/pilar/internal/app"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/events"
)

// demoPeerID names the scripted peer.
const demoPeerID = "demo-peer"

// DemoPeer is a headless second peer editing a copy of the document. Every
// tick it inserts a paragraph at the top, so remote edits land while the
// local user is in the middle of a gesture.
type DemoPeer struct {
	app      *app.App
	interval time.Duration
	logger   *slog.Logger
	edits    int
}

// NewDemoPeer joins bus with a copy of doc. Node ids are kept so both peers
// address the same nodes.
func NewDemoPeer(bus *events.Bus, doc *document.Doc, docID string, interval time.Duration, logger *slog.Logger) (*DemoPeer, error) {
	copyOf, err := document.New(doc.Spec())
	if err != nil {
		return nil, err
	}
	client := bus.Join(demoPeerID)
	if err := client.Subscribe(docID); err != nil {
		return nil, err
	}
	a := app.New(copyOf,
		app.WithEventPublisher(client),
		app.WithDocID(docID),
		app.WithPeerID(demoPeerID),
		app.WithLogger(logger.With("peer_id", demoPeerID)))
	return &DemoPeer{app: a, interval: interval, logger: logger}, nil
}

// Run applies the other peers' edits and dispatches one scripted edit per
// interval until ctx is done.
func (p *DemoPeer) Run(ctx context.Context) {
	go func() {
		if err := p.app.Editor.Run(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("demo peer stopped listening", "error", err)
		}
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Edit()
		}
	}
}

// Edit dispatches the next scripted edit.
func (p *DemoPeer) Edit() bool {
	p.edits++
	st := p.app.Editor.State()
	tr := st.Tr().
		SetLabel("remoteDemo").
		Insert(0, document.Paragraph(fmt.Sprintf("remote edit #%d", p.edits)))
	if err := p.app.Editor.Dispatch(tr); err != nil {
		p.logger.Warn("demo edit rejected", "edit", p.edits, "error", err)
		return false
	}
	return true
}

// Doc returns the peer's copy of the document.
func (p *DemoPeer) Doc() *document.Doc {
	return p.app.Editor.State().Doc()
}

// Close leaves the bus.
func (p *DemoPeer) Close() error {
	return p.app.Close()
}
