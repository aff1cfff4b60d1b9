package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/labeleer/labeleer-cli/actions/mock_actions"
	"github.com/labeleer/labeleer-cli/config"
	"github.com/labeleer/labeleer-cli/format"
	"github.com/labeleer/labeleer-cli/prompt"
	"github.com/labeleer/labeleer-cli/prompt/prompttest"
	"github.com/labeleer/labeleer-cli/remote"
	"github.com/labeleer/labeleer-cli/ui"
)

// Menu indexes for an existing label file.
const (
	menuFetch = iota
	menuPublish
	menuCreate
	menuCancel
)

type fixture struct {
	gw     *mock_actions.MockGateway
	script *prompttest.Script
	out    *bytes.Buffer
	path   string
	d      *Dispatcher
}

func newFixture(t *testing.T, name, content string, isNew bool, answers ...any) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := &fixture{
		gw:     mock_actions.NewMockGateway(ctrl),
		script: prompttest.New(answers...),
		out:    &bytes.Buffer{},
		path:   path,
	}
	cfg := config.ProjectConfig{ProjectID: "p1", AccessToken: "tok", LocalFilePath: path, IsNew: isNew}
	f.d = NewDispatcher(cfg, f.gw, f.script, ui.New(f.out, true), nil)
	return f
}

func (f *fixture) content(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestMenuHidesPublishForNewFile(t *testing.T) {
	existing := newFixture(t, "labels.json", "", false)
	if got := existing.d.Menu(); len(got) != 4 || got[menuPublish] != Publish {
		t.Fatalf("Menu() = %v, want publish offered", got)
	}

	created := newFixture(t, "labels.json", "", true)
	for _, a := range created.d.Menu() {
		if a == Publish {
			t.Fatalf("Menu() = %v offers publish for a new file", created.d.Menu())
		}
	}
}

func TestRunCancelEndsNormally(t *testing.T) {
	f := newFixture(t, "labels.json", "{}", false, menuCancel)
	if err := f.d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunCancelledPrompt(t *testing.T) {
	f := newFixture(t, "labels.json", "{}", false)
	if err := f.d.Run(context.Background()); !errors.Is(err, prompt.ErrCancelled) {
		t.Fatalf("Run error = %v, want ErrCancelled", err)
	}
}

func TestFetchOverwritesFileVerbatim(t *testing.T) {
	body := []byte(`{"greeting":{"translations":{"en_US":"Hi"}}}`)
	f := newFixture(t, "labels.json", `{"old":{"translations":{}}}`, false, menuFetch, menuCancel)
	f.gw.EXPECT().Export(gomock.Any(), "p1", format.JSON).Return(body, nil)

	if err := f.d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := f.content(t); got != string(body) {
		t.Fatalf("file = %q, want %q", got, body)
	}
	if !strings.Contains(f.out.String(), "1 entry") {
		t.Errorf("summary missing entry count:\n%s", f.out.String())
	}
}

func TestFetchFailureIsFatal(t *testing.T) {
	f := newFixture(t, "labels.json", "{}", false, menuFetch)
	f.gw.EXPECT().Export(gomock.Any(), "p1", format.JSON).
		Return(nil, &remote.RequestError{Method: "GET", Path: "/project/p1/translations/export", StatusCode: 403, Status: "403 Forbidden"})

	err := f.d.Run(context.Background())
	var reqErr *remote.RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusForbidden {
		t.Fatalf("Run error = %v, want 403 RequestError", err)
	}
	if !strings.Contains(err.Error(), "403 Forbidden") {
		t.Errorf("error %q does not mention the status", err)
	}
	if got := f.content(t); got != "{}" {
		t.Fatalf("file changed to %q", got)
	}
}

func TestFetchUnknownFormatAsksOnce(t *testing.T) {
	yamlIdx := -1
	for i, g := range format.All() {
		if g == format.YAML {
			yamlIdx = i
		}
	}
	f := newFixture(t, "labels.lbl", "", false, menuFetch, yamlIdx, menuFetch, menuCancel)
	f.gw.EXPECT().Export(gomock.Any(), "p1", format.YAML).Return([]byte("a: b\n"), nil).Times(2)

	if err := f.d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := f.script.CountKind("select"); n != 4 {
		t.Fatalf("select prompts = %d, want 4 (format asked once)", n)
	}
}

func TestFetchUnknownFormatNone(t *testing.T) {
	none := len(format.All())
	f := newFixture(t, "labels.lbl", "keep", false, menuFetch, none)

	err := f.d.Run(context.Background())
	if !errors.Is(err, ErrUnresolvedFormat) {
		t.Fatalf("Run error = %v, want ErrUnresolvedFormat", err)
	}
	if got := f.content(t); got != "keep" {
		t.Fatalf("file changed to %q", got)
	}
}

func TestPublishRefusesNonJSON(t *testing.T) {
	const content = "greeting: Hi\n"
	f := newFixture(t, "labels.yaml", content, false, menuPublish, menuCancel)

	if err := f.d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := f.content(t); got != content {
		t.Fatalf("file changed to %q", got)
	}
	if !strings.Contains(f.out.String(), "[ERROR]") {
		t.Errorf("refusal not reported:\n%s", f.out.String())
	}
	if err := f.d.Publish(context.Background()); !errors.Is(err, ErrUnsupportedPublishFormat) {
		t.Fatalf("Publish error = %v, want ErrUnsupportedPublishFormat", err)
	}
}

func TestPublishRefusesMalformedFile(t *testing.T) {
	f := newFixture(t, "labels.json", `{"a": 1}`, false, menuPublish, menuCancel)

	if err := f.d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(f.out.String(), "malformed label file") {
		t.Errorf("malformed file not reported:\n%s", f.out.String())
	}
}

func TestPublishSendsFileContent(t *testing.T) {
	const content = `{"greeting":{"translations":{"en":"Hi"}}}`
	f := newFixture(t, "labels.json", content+"\n", false, menuPublish, menuCancel)
	f.gw.EXPECT().Push(gomock.Any(), "p1", json.RawMessage(content)).Return(nil)

	if err := f.d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(f.out.String(), "Published 1 label") {
		t.Errorf("missing publish summary:\n%s", f.out.String())
	}
}

func TestPublishFailureReturnsToMenu(t *testing.T) {
	f := newFixture(t, "labels.json", `{}`, false, menuPublish, menuCancel)
	f.gw.EXPECT().Push(gomock.Any(), "p1", gomock.Any()).
		Return(&remote.RequestError{Method: "POST", Path: "/project/p1/translations", StatusCode: 422, Status: "422 Unprocessable Entity", Body: `{"error":"bad locale"}`})

	if err := f.d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, "422 Unprocessable Entity") || !strings.Contains(out, "bad locale") {
		t.Errorf("failure not reported with status and body:\n%s", out)
	}
}
