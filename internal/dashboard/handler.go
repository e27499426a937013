package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/2beens/fitnessdash/internal/spreadsheet"
	"github.com/2beens/fitnessdash/internal/telemetry/metrics"
	"github.com/2beens/fitnessdash/internal/telemetry/tracing"
	"github.com/2beens/fitnessdash/internal/workouts"
	"github.com/2beens/fitnessdash/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dashboard_test

type datasetLoader interface {
	Load(ctx context.Context) (*Dataset, error)
	Refresh(ctx context.Context) error
	TestConnection(ctx context.Context) spreadsheet.ConnectionStatus
	SourceName() string
	RefreshInterval() time.Duration
}

type HandlerParams struct {
	Loader           datasetLoader
	Templates        *Templates
	MetricsManager   *metrics.Manager
	ShowErrorDetails bool
	// Now is used for "days since" figures, time.Now when nil.
	Now func() time.Time
}

type Handler struct {
	loader           datasetLoader
	templates        *Templates
	metricsManager   *metrics.Manager
	showErrorDetails bool
	now              func() time.Time
}

func NewHandler(params HandlerParams) (*Handler, error) {
	if params.Loader == nil {
		return nil, errors.New("dashboard handler needs a loader")
	}

	templates := params.Templates
	if templates == nil {
		var err error
		if templates, err = LoadTemplates(); err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
	}
	if params.MetricsManager == nil {
		params.MetricsManager = metrics.NewTestManager()
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	return &Handler{
		loader:           params.Loader,
		templates:        templates,
		metricsManager:   params.MetricsManager,
		showErrorDetails: params.ShowErrorDetails,
		now:              params.Now,
	}, nil
}

type pageBuilder func(ds *Dataset, st State) (any, error)

type pageOption func(data *PageData)

func withConnection(status spreadsheet.ConnectionStatus) pageOption {
	return func(data *PageData) {
		data.Sidebar.Connection = &status
	}
}

func (handler *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	handler.renderPage(w, r, PageHome, handler.buildHome)
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	handler.renderPage(w, r, PageSummary, func(ds *Dataset, _ State) (any, error) {
		return BuildSummaryView(ds), nil
	})
}

func (handler *Handler) HandleWorkoutTypes(w http.ResponseWriter, r *http.Request) {
	handler.renderPage(w, r, PageWorkouts, func(ds *Dataset, _ State) (any, error) {
		return BuildWorkoutTypesView(ds, handler.now()), nil
	})
}

func (handler *Handler) HandleWorkout(w http.ResponseWriter, r *http.Request) {
	handler.renderPage(w, r, PageWorkout, func(ds *Dataset, st State) (any, error) {
		if !ds.HasWorkout(st.Workout) {
			return nil, fmt.Errorf("%w: %s", ErrWorkoutNotFound, st.Workout)
		}
		return BuildWorkoutView(ds.Workout(st.Workout), st, handler.now()), nil
	})
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	handler.renderPage(w, r, PageProgress, func(ds *Dataset, st State) (any, error) {
		return BuildProgressView(ds, st), nil
	})
}

// HandleTestConnection reads the header row only and shows the outcome in the sidebar of the home page.
func (handler *Handler) HandleTestConnection(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.testConnection")
	defer span.End()

	status := handler.loader.TestConnection(ctx)
	if !status.OK {
		log.Warnf("connection test failed: %s", status.Message)
	}

	handler.renderPage(w, r.WithContext(ctx), PageHome, handler.buildHome, withConnection(status))
}

// HandleRefresh clears the cached dataset and sends the browser back where it came from.
func (handler *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.refresh")
	defer span.End()

	notice := "refreshed"
	if err := handler.loader.Refresh(ctx); err != nil {
		log.Errorf("refresh dataset: %s", err)
		notice = "refresh_error"
	}

	if err := r.ParseForm(); err != nil {
		log.Tracef("refresh, parse form: %s", err)
	}

	http.Redirect(w, r, redirectTarget(r.PostFormValue("return"), notice), http.StatusSeeOther)
}

func (handler *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	st := ParseState(PageHome, r)
	data := PageData{
		Title:   "Page not found",
		State:   st,
		Sidebar: handler.sidebar(st),
		Error: &PageError{
			Kind:    ErrorKindNotFound,
			Title:   "Page not found",
			Message: fmt.Sprintf("Nothing lives at %s.", r.URL.Path),
		},
	}
	handler.render(w, "error", data, http.StatusNotFound)
}

func (handler *Handler) buildHome(ds *Dataset, _ State) (any, error) {
	return BuildHomeView(ds), nil
}

// renderPage loads the dataset and renders one page. Load errors, an empty dataset and
// builder failures (panics included) all end up as an inline message in the layout.
func (handler *Handler) renderPage(w http.ResponseWriter, r *http.Request, page Page, build pageBuilder, opts ...pageOption) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard."+string(page))
	defer span.End()

	st := ParseState(page, r)
	data := PageData{
		Title:            pageTitle(st),
		State:            st,
		Sidebar:          handler.sidebar(st),
		ShowErrorDetails: handler.showErrorDetails,
	}
	for _, opt := range opts {
		opt(&data)
	}

	status := http.StatusOK
	ds, err := handler.loader.Load(ctx)
	switch {
	case err != nil && page == PageHome:
		log.Warnf("home page, load dataset: %s", err)
		data.Content = BuildHomeView(nil)
	case err != nil:
		log.Errorf("%s page, load dataset: %s", page, err)
		pe := ClassifyError(err, handler.loader.SourceName())
		data.Error = &pe
		status = pe.StatusCode()
	default:
		data.LoadedAt = ds.FetchedAt
		data.Cached = ds.Cached
		data.Sidebar.Workouts = workouts.UniqueWorkouts(ds.Table)
		span.SetAttributes(attribute.Bool("cached", ds.Cached))

		if ds.IsEmpty() && page != PageHome {
			data.NoData = true
			break
		}

		content, err := handler.build(build, ds, st)
		if err != nil {
			pe := ClassifyError(err, handler.loader.SourceName())
			data.Error = &pe
			status = pe.StatusCode()
			break
		}
		data.Content = content
	}

	handler.render(w, string(page), data, status)
}

// build runs a page builder; a panic becomes an error so the page still renders.
func (handler *Handler) build(build pageBuilder, ds *Dataset, st State) (content any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			handler.metricsManager.CounterHandleRequestPanic.Inc()
			log.Errorf("%s page panicked: %v\n%s", st.Page, rec, debug.Stack())
			content = nil
			err = fmt.Errorf("build %s page: %v", st.Page, rec)
		}
	}()
	return build(ds, st)
}

func (handler *Handler) render(w http.ResponseWriter, name string, data PageData, status int) {
	var buf strings.Builder
	if err := handler.templates.Render(&buf, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponse(w, pkg.ContentType.HTML, buf.String(), status)
}

func (handler *Handler) sidebar(st State) Sidebar {
	return Sidebar{
		SheetName:       handler.loader.SourceName(),
		RefreshInterval: handler.loader.RefreshInterval(),
		Notice:          NoticeMessage(st.Notice),
	}
}

func pageTitle(st State) string {
	switch st.Page {
	case PageSummary:
		return "Summary"
	case PageWorkouts:
		return "Workout Types"
	case PageWorkout:
		return st.Workout + " Analysis"
	case PageProgress:
		return "Progress Tracking"
	default:
		return "Home"
	}
}

// redirectTarget only follows local paths, anything else goes back home.
func redirectTarget(ret, notice string) string {
	target, err := url.Parse(ret)
	if err != nil || ret == "" || !strings.HasPrefix(target.Path, "/") || strings.HasPrefix(ret, "//") || target.Host != "" || target.Scheme != "" {
		target = &url.URL{Path: "/"}
	}
	q := target.Query()
	q.Set(queryParamNotice, notice)
	target.RawQuery = q.Encode()
	return target.String()
}
