package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/labeleer/labeleer-cli/actions"
	"github.com/labeleer/labeleer-cli/app"
	"github.com/labeleer/labeleer-cli/config"
	"github.com/labeleer/labeleer-cli/format"
	"github.com/labeleer/labeleer-cli/prompt"
	"github.com/labeleer/labeleer-cli/prompt/prompttest"
	"github.com/labeleer/labeleer-cli/remote"
	"github.com/labeleer/labeleer-cli/settings"
	"github.com/labeleer/labeleer-cli/ui"
)

// fakeAPI records requests made against a minimal Labeleer API.
type fakeAPI struct {
	mu       sync.Mutex
	requests []string
	pushed   []byte
	export   string
	locales  string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	if r.Header.Get("Authorization") != "Bearer tok_live_abcdef123" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/project/p1/locale":
		io.WriteString(w, f.locales)
	case r.Method == http.MethodGet && r.URL.Path == "/api/project/p1/translations/export":
		io.WriteString(w, f.export)
	case r.Method == http.MethodPost && r.URL.Path == "/api/project/p1/translations":
		f.pushed, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func writeFile(path, content string) {
	Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
}

func listDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	Expect(err).NotTo(HaveOccurred())
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func formatIndex(f format.Format) int {
	for i, g := range format.All() {
		if g == f {
			return i
		}
	}
	Fail("format not registered: " + string(f))
	return -1
}

const envFile = "LABELEER_ACCESS_TOKEN=tok_live_abcdef123\nLABELEER_PROJECT_ID=p1\n"

var _ = Describe("Run", func() {
	var (
		root string
		api  *fakeAPI
		srv  *httptest.Server
		out  *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "labeleer-app-")
		Expect(err).NotTo(HaveOccurred())

		api = &fakeAPI{locales: `{"data":[{"locale":"en","isReference":true}]}`}
		srv = httptest.NewServer(api)
		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		srv.Close()
		os.RemoveAll(root)
	})

	run := func(script *prompttest.Script) error {
		return app.Run(context.Background(), app.Options{
			Settings: settings.Settings{Root: root, APIURL: srv.URL + "/api"},
			Version:  "1.0.0",
			Prompter: script,
			Console:  ui.New(out, true),
		})
	}

	Context("in an empty project", func() {
		It("exits normally without writing files when everything is declined", func() {
			script := prompttest.New("", "")

			err := run(script)

			Expect(errors.Is(err, config.ErrNoCredentials)).To(BeTrue())
			Expect(app.ExitCode(err)).To(Equal(0))
			Expect(listDir(root)).To(BeEmpty())
			Expect(api.Requests()).To(BeEmpty())
		})

		It("does not offer a label file while a credential is missing", func() {
			script := prompttest.New("", "p1", true)

			err := run(script)

			Expect(errors.Is(err, config.ErrNoCredentials)).To(BeTrue())
			Expect(script.CountKind("confirm")).To(Equal(0))
			Expect(script.Remaining()).To(Equal(1))
			Expect(listDir(root)).To(BeEmpty())
		})

		It("stops at the label file step when both credentials are typed", func() {
			script := prompttest.New("tok_live_abcdef123", "p1", false)

			err := run(script)

			Expect(errors.Is(err, config.ErrNoLabelFile)).To(BeTrue())
			Expect(app.ExitCode(err)).To(Equal(0))
			Expect(listDir(root)).To(BeEmpty())
		})
	})

	Context("with one env file and one label file", func() {
		BeforeEach(func() {
			writeFile(filepath.Join(root, ".env"), envFile)
			writeFile(filepath.Join(root, "web", "labels.json"), `{"old":{"translations":{"en":"Old"}}}`)
			writeFile(filepath.Join(root, "node_modules", "pkg", "labels.json"), `{}`)
			api.export = `{"greeting":{"translations":{"en":"Hello"}}}`
		})

		It("asks nothing beyond the menu and fetch overwrites the file verbatim", func() {
			script := prompttest.New(0, 3)

			err := run(script)

			Expect(err).NotTo(HaveOccurred())
			Expect(script.CountKind("select")).To(Equal(2))
			Expect(script.Calls()).To(HaveLen(2))

			data, err := os.ReadFile(filepath.Join(root, "web", "labels.json"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(api.export))
			Expect(api.Requests()).To(Equal([]string{"GET /api/project/p1/translations/export"}))
		})

		It("publishes the label file", func() {
			script := prompttest.New(1, 3)

			Expect(run(script)).To(Succeed())
			Expect(string(api.pushed)).To(MatchJSON(`{"entries":{"old":{"translations":{"en":"Old"}}}}`))
		})

		It("masks the token in the summary", func() {
			Expect(run(prompttest.New(3))).To(Succeed())
			Expect(out.String()).To(ContainSubstring("tok_...f123"))
			Expect(out.String()).NotTo(ContainSubstring("tok_live_abcdef123"))
		})

		It("fails with exit code 1 when the export is rejected", func() {
			writeFile(filepath.Join(root, ".env"), "LABELEER_ACCESS_TOKEN=wrong-token-123\nLABELEER_PROJECT_ID=p1\n")

			err := run(prompttest.New(0))

			var reqErr *remote.RequestError
			Expect(errors.As(err, &reqErr)).To(BeTrue())
			Expect(reqErr.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(app.ExitCode(err)).To(Equal(1))
		})
	})

	Context("with an env file but no label file", func() {
		BeforeEach(func() {
			writeFile(filepath.Join(root, ".env"), envFile)
		})

		It("creates a label file and saves a label into it", func() {
			script := prompttest.New(
				true,                     // create a label file
				formatIndex(format.JSON), // format
				false,                    // record in labeleer.json
				1,                        // menu: create a label
				"greeting",
				"Hi",
				false, // create another
				2,     // menu: exit
			)

			Expect(run(script)).To(Succeed())

			data, err := os.ReadFile(filepath.Join(root, "labels.json"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(MatchJSON(`{"greeting":{"translations":{"en":"Hi"}}}`))
			Expect(listDir(root)).NotTo(ContainElement(config.SetupFileName))

			for _, c := range script.Calls() {
				if c.Kind == "select" && c.Message == "What would you like to do?" {
					Expect(c.Options).NotTo(ContainElement(actions.Publish.Label()))
				}
			}
		})

		It("records the new file in labeleer.json and uses it next time", func() {
			first := prompttest.New(true, formatIndex(format.YAML), true, 2)
			Expect(run(first)).To(Succeed())

			setup, err := config.LoadSetup(root)
			Expect(err).NotTo(HaveOccurred())
			Expect(setup).NotTo(BeNil())
			Expect(setup.Variant).To(Equal(format.YAML))

			writeFile(filepath.Join(root, "other", "labels.json"), `{}`)
			second := prompttest.New(3)
			Expect(run(second)).To(Succeed())
			Expect(second.Calls()).To(HaveLen(1))
			Expect(out.String()).To(ContainSubstring("labels.yaml"))
		})
	})

	Context("with a per-locale labeleer.json", func() {
		It("warns and falls back to discovery", func() {
			writeFile(filepath.Join(root, ".env"), envFile)
			writeFile(filepath.Join(root, "labels.json"), `{}`)
			writeFile(filepath.Join(root, config.SetupFileName), `{"variant":"json","paths":[{"locale":"de","path":"de.json"}]}`)

			Expect(run(prompttest.New(3))).To(Succeed())
			Expect(out.String()).To(ContainSubstring("[WARN]"))
		})
	})
})

var _ = Describe("ExitCode", func() {
	It("treats cancellation and missing configuration as normal endings", func() {
		Expect(app.ExitCode(nil)).To(Equal(0))
		Expect(app.ExitCode(prompt.ErrCancelled)).To(Equal(0))
		Expect(app.ExitCode(context.Canceled)).To(Equal(0))
		Expect(app.ExitCode(config.ErrNoLabelFile)).To(Equal(0))
		Expect(app.ExitCode(config.ErrNoCredentials)).To(Equal(0))
	})

	It("fails for everything else", func() {
		Expect(app.ExitCode(actions.ErrUnresolvedFormat)).To(Equal(1))
		Expect(app.ExitCode(errors.New("disk full"))).To(Equal(1))
	})
})

var _ = Describe("Report", func() {
	var out, logs *bytes.Buffer

	BeforeEach(func() {
		out = &bytes.Buffer{}
		logs = &bytes.Buffer{}
	})

	It("logs unexpected failures without verbose output", func() {
		app.Report(ui.New(out, true), app.NewLogger(logs, false), errors.New("disk full"))

		Expect(out.String()).To(ContainSubstring("disk full"))
		Expect(logs.String()).To(ContainSubstring("level=error"))
		Expect(logs.String()).To(ContainSubstring("disk full"))
	})

	It("keeps normal endings out of the log", func() {
		app.Report(ui.New(out, true), app.NewLogger(logs, false), config.ErrNoCredentials)

		Expect(out.String()).To(ContainSubstring("nothing to do"))
		Expect(logs.String()).To(BeEmpty())
	})
})

var _ = Describe("UserAgent", func() {
	It("includes the version", func() {
		Expect(app.UserAgent("1.2.3")).To(Equal("labeleer-cli/1.2.3"))
		Expect(app.UserAgent("")).To(Equal("labeleer-cli/dev"))
	})
})
