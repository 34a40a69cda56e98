package httpadapter

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
	"github.com/couchcryptid/earthquake-dashboard/internal/quake"
)

const (
	feedWindowDays      = 30
	fiveYearDays        = 5 * 365
	fiveYearTitleSuffix = "(5 Years)"

	msgUpstreamError = "Error fetching data from USGS API"
)

type handlers struct {
	dash   Dashboard
	info   AppInfo
	pages  *template.Template
	logger *slog.Logger
}

type feedResponse struct {
	Count  int                      `json:"count"`
	Events []domain.SimplifiedEvent `json:"events"`
}

type statusResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
}

type infoResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

type mainPageData struct {
	Locations       []string
	CurrentLocation string
}

type graphPageData struct {
	Days            int
	CurrentLocation string
	Locations       []string
	TopEvents       []domain.RawFeature
	LastEvent       *domain.RawFeature
}

func (h *handlers) mainPage(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "main_page.html", mainPageData{
		Locations:       domain.LocationNames(),
		CurrentLocation: domain.DefaultLocationName,
	})
}

func (h *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong")) //nolint:errcheck // best-effort probe response
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Application is healthy",
	})
}

func (h *handlers) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Service: h.info.Name,
		Status:  "running",
		Uptime:  domain.Now().Sub(h.info.StartedAt).Round(time.Second).String(),
	})
}

func (h *handlers) appInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		Name:        h.info.Name,
		Version:     h.info.Version,
		Author:      h.info.Author,
		Description: h.info.Description,
	})
}

func (h *handlers) telAvivEvents(w http.ResponseWriter, r *http.Request) {
	h.writeFeed(w, r, domain.DefaultLocation())
}

func (h *handlers) regionEvents(w http.ResponseWriter, r *http.Request) {
	p, ok := h.params(w, r, feedWindowDays)
	if !ok {
		return
	}
	h.writeFeed(w, r, domain.LookupLocation(p.Location))
}

func (h *handlers) writeFeed(w http.ResponseWriter, r *http.Request, loc domain.Location) {
	events, err := h.dash.RegionEvents(r.Context(), loc, feedWindowDays)
	if err != nil {
		h.upstreamFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedResponse{Count: len(events), Events: events})
}

func (h *handlers) graphImage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.params(w, r, feedWindowDays)
	if !ok {
		return
	}
	h.writeGraph(w, r, p.Days, domain.LookupLocation(p.Location), "")
}

func (h *handlers) graphFiveYearsImage(w http.ResponseWriter, r *http.Request) {
	// The window is fixed, so a days parameter is ignored rather than validated.
	locationOnly := url.Values{"location": r.URL.Query()["location"]}
	p, ok := h.validParams(w, r, locationOnly, fiveYearDays)
	if !ok {
		return
	}
	h.writeGraph(w, r, fiveYearDays, domain.LookupLocation(p.Location), fiveYearTitleSuffix)
}

func (h *handlers) writeGraph(w http.ResponseWriter, r *http.Request, days int, loc domain.Location, suffix string) {
	img, err := h.dash.GenerateGraph(r.Context(), days, loc.Lat, loc.Lon, loc.RadiusKm, suffix)
	if err != nil {
		h.upstreamFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(img) //nolint:errcheck // client went away
}

func (h *handlers) graphPage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.params(w, r, feedWindowDays)
	if !ok {
		return
	}

	top, last, err := h.dash.Rankings(r.Context(), quake.DefaultTopLimit)
	if err != nil {
		h.upstreamFailure(w, err)
		return
	}

	current := p.Location
	if current == "" {
		current = domain.DefaultLocationName
	}
	h.render(w, "graph_dashboard.html", graphPageData{
		Days:            p.Days,
		CurrentLocation: current,
		Locations:       domain.LocationNames(),
		TopEvents:       top,
		LastEvent:       last,
	})
}

// params parses and validates the shared query parameters, answering 400 on failure.
func (h *handlers) params(w http.ResponseWriter, r *http.Request, defaultDays int) (queryParams, bool) {
	return h.validParams(w, r, r.URL.Query(), defaultDays)
}

func (h *handlers) validParams(w http.ResponseWriter, r *http.Request, values url.Values, defaultDays int) (queryParams, bool) {
	p, err := parseQueryParams(values, defaultDays)
	if err != nil {
		h.logger.Warn("invalid query parameters", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return queryParams{}, false
	}
	return p, true
}

// upstreamFailure mirrors a non-200 upstream status, or answers 502 for
// failures that never produced a response.
func (h *handlers) upstreamFailure(w http.ResponseWriter, err error) {
	if status, ok := domain.UpstreamStatus(err); ok {
		h.logger.Error(msgUpstreamError, "status", status, "error", err)
		writeJSON(w, status, map[string]string{"error": msgUpstreamError})
		return
	}
	h.logger.Error("upstream request failed", "error", err)
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": msgUpstreamError})
}

func (h *handlers) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client went away
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
