package execution

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hbsmoke/internal/config"
	"hbsmoke/internal/domain"
	"hbsmoke/internal/logging"
	"hbsmoke/internal/probe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	started []string
	results []domain.CheckResult
	summary *domain.Session
}

func (r *recordingReporter) PrintCheckStart(name string) { r.started = append(r.started, name) }
func (r *recordingReporter) PrintCheckResult(res domain.CheckResult) {
	r.results = append(r.results, res)
}
func (r *recordingReporter) PrintSummary(s *domain.Session) { r.summary = s }

type recordingProgress struct {
	updates  int
	finished bool
}

func (p *recordingProgress) Update(int, int) { p.updates++ }
func (p *recordingProgress) Finish()         { p.finished = true }

func constCheck(name string, passed bool, err error) domain.Check {
	return domain.Check{Name: name, Fn: func(context.Context) (bool, error) { return passed, err }}
}

func TestRunner_RunCheck(t *testing.T) {
	tests := []struct {
		name      string
		check     domain.Check
		want      bool
		wantError string
	}{
		{"true passes", constCheck("ok", true, nil), true, ""},
		{"false fails", constCheck("no", false, nil), false, ""},
		{"error fails", constCheck("err", false, errors.New("connection refused")), false, "connection refused"},
		{"true with error fails", constCheck("both", true, errors.New("late")), false, "late"},
		{"nil probe fails", domain.Check{Name: "nil"}, false, ErrNoProbe.Error()},
		{
			"panic fails",
			domain.Check{Name: "boom", Fn: func(context.Context) (bool, error) { panic("boom") }},
			false,
			"panic: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &recordingReporter{}
			runner := NewRunner(reporter, logging.Discard())

			got := runner.RunCheck(context.Background(), tt.check)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, runner.Session().Attempted())
			assert.LessOrEqual(t, runner.Session().Passed(), runner.Session().Attempted())
			require.Len(t, reporter.results, 1)
			assert.Equal(t, tt.wantError, reporter.results[0].Error)
			assert.Equal(t, []string{tt.check.Name}, reporter.started)
		})
	}
}

func TestRunner_PanicDoesNotAbortRun(t *testing.T) {
	runner := NewRunner(nil, logging.Discard())
	checks := []domain.Check{
		{Name: "boom", Fn: func(context.Context) (bool, error) { panic("boom") }},
		constCheck("after", true, nil),
	}

	session, _ := runner.Execute(context.Background(), checks)

	assert.Equal(t, 2, session.Attempted())
	assert.Equal(t, 1, session.Passed())
}

func TestRunner_FailFast(t *testing.T) {
	checks := []domain.Check{
		constCheck("a", true, nil),
		constCheck("b", false, nil),
		constCheck("c", true, nil),
	}

	t.Run("disabled runs everything", func(t *testing.T) {
		session, _ := NewRunner(nil, logging.Discard()).Execute(context.Background(), checks)
		assert.Equal(t, 3, session.Attempted())
		assert.Equal(t, 2, session.Passed())
	})

	t.Run("enabled stops at first failure", func(t *testing.T) {
		runner := NewRunner(nil, logging.Discard())
		runner.SetFailFast(true)
		session, _ := runner.Execute(context.Background(), checks)
		assert.Equal(t, 2, session.Attempted())
		assert.Equal(t, 1, session.Passed())
	})
}

func TestRunner_Progress(t *testing.T) {
	progress := &recordingProgress{}
	runner := NewRunner(nil, logging.Discard())
	runner.SetProgress(progress)

	runner.Execute(context.Background(), []domain.Check{constCheck("a", true, nil), constCheck("b", false, nil)})

	assert.Equal(t, 2, progress.updates)
	assert.True(t, progress.finished)
}

func TestRunner_SummarizeNoChecks(t *testing.T) {
	reporter := &recordingReporter{}
	runner := NewRunner(reporter, logging.Discard())
	runner.Execute(context.Background(), nil)

	assert.True(t, runner.Summarize())
	require.NotNil(t, reporter.summary)
	assert.Equal(t, 0, reporter.summary.Attempted())
}

const indexHTML = `<!doctype html><html><head><title>HandballStats Pro</title></head>` +
	`<body><div id="root"></div><script type="module" src="/src/main.jsx"></script></body></html>`

func frontendSuite(t *testing.T, baseURL string) []domain.Check {
	t.Helper()
	cfg := config.New()
	cfg.Flags.BaseURL = baseURL
	cfg.Flags.Timeout = time.Second
	return probe.NewProber(cfg, probe.NewClient(cfg.GetTimeout(), logging.Discard())).Checks()
}

func TestRunner_FrontendSuite(t *testing.T) {
	tests := []struct {
		name        string
		assetStatus int
		passed      int
		success     bool
		rate        float64
	}{
		{"everything served", http.StatusOK, 3, true, 100},
		{"asset missing", http.StatusNotFound, 2, false, 200.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/vite.svg", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.assetStatus)
			})
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(indexHTML))
			})
			srv := httptest.NewServer(mux)
			defer srv.Close()

			runner := NewRunner(nil, logging.Discard())
			session, _ := runner.Execute(context.Background(), frontendSuite(t, srv.URL))

			assert.Equal(t, 3, session.Attempted())
			assert.Equal(t, tt.passed, session.Passed())
			assert.Equal(t, tt.success, runner.Summarize())
			rate, ok := session.SuccessRate()
			assert.True(t, ok)
			assert.InDelta(t, tt.rate, rate, 0.001)
		})
	}
}

func TestRunner_UnreachableFrontend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	reporter := &recordingReporter{}
	runner := NewRunner(reporter, logging.Discard())
	session, _ := runner.Execute(context.Background(), frontendSuite(t, url))

	assert.Equal(t, 3, session.Attempted())
	assert.Equal(t, 0, session.Passed())
	assert.False(t, runner.Summarize())
	for _, res := range reporter.results {
		assert.NotEmpty(t, res.Error)
	}
}

func TestRunner_Idempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/vite.svg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(indexHTML))
	}))
	defer srv.Close()

	runner := NewRunner(nil, logging.Discard())
	checks := frontendSuite(t, srv.URL)

	first, _ := runner.Execute(context.Background(), checks)
	second, _ := runner.Execute(context.Background(), checks)

	assert.Equal(t, first.Attempted(), second.Attempted())
	assert.Equal(t, first.Passed(), second.Passed())
	for i, res := range first.Results() {
		assert.Equal(t, res.Passed, second.Results()[i].Passed)
	}
}
