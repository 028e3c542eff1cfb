package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/export"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownList), errors.Is(err, domain.ErrOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidFilter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func (s *Server) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}

func (s *Server) getFilters(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]string, len(domain.Facets))
	for _, f := range domain.Facets {
		out[f.Param()] = f.Options()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Route domain.Route `json:"route"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := sessionFrom(r)
	if err := sess.Navigate(body.Route); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Route{"route": sess.Route()})
}

type listResponse struct {
	List    string               `json:"list"`
	Items   []domain.GroceryItem `json:"items"`
	Added   *bool                `json:"added,omitempty"`
	Deleted *bool                `json:"deleted,omitempty"`
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["list"]
	l, err := sessionFrom(r).List(name)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listResponse{List: name, Items: l.Items()})
}

// addItem answers 200 even when the list rejects the entry; the client
// sees added=false and the unchanged list.
func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["list"]
	l, err := sessionFrom(r).List(name)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	var body struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	added := l.Add(body.Name, body.Quantity)
	writeJSON(w, http.StatusOK, listResponse{List: name, Items: l.Items(), Added: &added})
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	l, err := sessionFrom(r).List(vars["list"])
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	idx, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}
	deleted := l.Delete(idx)
	writeJSON(w, http.StatusOK, listResponse{List: vars["list"], Items: l.Items(), Deleted: &deleted})
}

func (s *Server) exportGroceries(w http.ResponseWriter, r *http.Request) {
	format := export.FormatXLSX
	if mux.Vars(r)["ext"] == "csv" {
		format = export.FormatCSV
	}
	items := sessionFrom(r).Groceries.Items()

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="grocery-list%s"`, format.Ext()))
	if err := export.Write(w, format, items); err != nil {
		s.log.Error("export: %v", err)
	}
}

type recipesResponse struct {
	Route       domain.Route                 `json:"route"`
	State       string                       `json:"state"`
	Ingredients []domain.Ingredient          `json:"ingredients"`
	Selected    []domain.Ingredient          `json:"selected"`
	Filters     domain.Filters               `json:"filters"`
	Results     []domain.RecipeHit           `json:"results"`
	Nutrition   map[string]*domain.Nutrition `json:"nutrition"`
}

func (s *Server) recipesState(r *http.Request) recipesResponse {
	sess := sessionFrom(r)
	b := sess.Recipes
	return recipesResponse{
		Route:       sess.Route(),
		State:       b.State().String(),
		Ingredients: b.Ingredients(),
		Selected:    b.Selected(),
		Filters:     b.Filters(),
		Results:     b.Results(),
		Nutrition:   b.NutritionAll(),
	}
}

func (s *Server) getRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.recipesState(r))
}

func (s *Server) toggleIngredient(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}
	if !sessionFrom(r).Recipes.ToggleAt(idx) {
		writeError(w, http.StatusNotFound, domain.ErrOutOfRange.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.recipesState(r))
}

func (s *Server) setFilters(w http.ResponseWriter, r *http.Request) {
	var fs domain.Filters
	if err := decode(r, &fs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sessionFrom(r).Recipes.SetFilters(fs); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.recipesState(r))
}

// search always answers 200: a failed search is reported server-side and
// shows up as an empty result list.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.withTimeout(r)
	defer cancel()
	sessionFrom(r).Recipes.Fetch(ctx)
	writeJSON(w, http.StatusOK, s.recipesState(r))
}

type uriRequest struct {
	URI string `json:"uri"`
}

func (s *Server) nutrition(w http.ResponseWriter, r *http.Request) {
	var body uriRequest
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := s.withTimeout(r)
	defer cancel()

	n, err := sessionFrom(r).LookupNutrition(ctx, body.URI)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		URI       string                 `json:"uri"`
		Nutrition *domain.Nutrition      `json:"nutrition"`
		Facts     []domain.NutritionFact `json:"facts"`
	}{body.URI, n, n.Facts()})
}

func (s *Server) merge(w http.ResponseWriter, r *http.Request) {
	var body uriRequest
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := sessionFrom(r)
	added, err := sess.MergeResult(body.URI)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if added == nil {
		added = []string{}
	}
	writeJSON(w, http.StatusOK, struct {
		Added []string             `json:"added"`
		Items []domain.GroceryItem `json:"items"`
		Route domain.Route         `json:"route"`
	}{added, sess.Groceries.Items(), sess.Route()})
}
