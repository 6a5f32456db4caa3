package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"conference-portal-api/events"
	"conference-portal-api/gateway"
	"conference-portal-api/models"

	"github.com/stretchr/testify/require"
)

var (
	userSession  = Session{UserID: "U1", DisplayName: "Ada Participant", Email: "ada@example.org", Role: models.RoleUser}
	otherSession = Session{UserID: "U2", DisplayName: "Other Participant", Email: "other@example.org", Role: models.RoleUser}
	adminSession = Session{UserID: "A1", DisplayName: "Program Chair", Email: "chair@example.org", Role: models.RoleAdmin}
)

const validAbstract = "This paper studies how digital rights are exercised and restricted in conflict zones, " +
	"drawing on field interviews and network measurements collected over three years."

// stepClock advances by one second on every reading.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type memFiles struct {
	mu      sync.Mutex
	saved   map[string][]byte
	removed []string
	saveErr error
}

func newMemFiles() *memFiles {
	return &memFiles{saved: make(map[string][]byte)}
}

func (f *memFiles) Save(_ context.Context, key, _ string, r io.Reader, _ int64) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[key] = data
	return key, nil
}

func (f *memFiles) Remove(_ context.Context, storedPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, storedPath)
	f.removed = append(f.removed, storedPath)
	return nil
}

type testEnv struct {
	gw    *gateway.GormGateway
	files *memFiles
	bus   *events.Bus
	clock *stepClock
	deps  Deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gw, err := gateway.OpenSQLite("", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	env := &testEnv{
		gw:    gw,
		files: newMemFiles(),
		bus:   events.NewBus(64),
		clock: newStepClock(),
	}
	env.deps = Deps{
		Gateway: env.gw,
		Files:   env.files,
		Events:  env.bus,
		Now:     env.clock.Now,
	}
	return env
}

func upload(name, contentType string, size int) *Upload {
	return &Upload{
		Name:        name,
		Size:        int64(size),
		ContentType: contentType,
		Body:        bytes.NewReader(bytes.Repeat([]byte("x"), size)),
	}
}

func pdfUpload() *Upload {
	return upload("paper.pdf", "application/pdf", 2048)
}

func validPaper(title string) SubmitPaperInput {
	return SubmitPaperInput{
		Title:    title,
		Abstract: validAbstract,
		Keywords: []string{"digital rights", "conflict"},
		File:     pdfUpload(),
	}
}

// failingGateway fails every paper and payment create with err.
type failingGateway struct {
	*gateway.GormGateway
	err error
}

func (g failingGateway) Papers() gateway.Collection[models.Paper] {
	return failingCreate[models.Paper]{Collection: g.GormGateway.Papers(), err: g.err}
}

func (g failingGateway) Payments() gateway.Collection[models.Payment] {
	return failingCreate[models.Payment]{Collection: g.GormGateway.Payments(), err: g.err}
}

type failingCreate[T any] struct {
	gateway.Collection[T]
	err error
}

func (c failingCreate[T]) Create(context.Context, *T) error { return c.err }

// racingGateway simulates a concurrent edit landing between a paper read and its update.
type racingGateway struct {
	*gateway.GormGateway
}

func (g racingGateway) Papers() gateway.Collection[models.Paper] {
	return racingPapers{Collection: g.GormGateway.Papers()}
}

type racingPapers struct {
	gateway.Collection[models.Paper]
}

func (c racingPapers) Get(ctx context.Context, id string) (*models.Paper, error) {
	p, err := c.Collection.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Collection.Update(ctx, id, gateway.Fields{"title": p.Title + " (edited)"}); err != nil {
		return nil, err
	}
	return p, nil
}

var errStorageDown = errors.New("storage down")

func drain(ch <-chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case evt := <-ch:
			out = append(out, evt)
		default:
			return out
		}
	}
}

func eventTypes(evts []events.Event) []string {
	out := make([]string, 0, len(evts))
	for _, e := range evts {
		out = append(out, e.Type)
	}
	return out
}

func longText(n int) string {
	return strings.Repeat("a", n)
}
