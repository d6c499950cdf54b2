package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ritzau/vt-designer/pkg/configure"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/naming"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/render"
)

// ObjectView is the JSON form of one object.
type ObjectView struct {
	ID           objectid.ObjectID   `json:"id"`
	Type         model.ObjectType    `json:"type"`
	TypeName     string              `json:"type_name"`
	Name         string              `json:"name,omitempty"`
	DisplayName  string              `json:"display_name"`
	Attributes   json.RawMessage     `json:"attributes"`
	Refs         []model.Reference   `json:"refs"`
	Referrers    []objectid.ObjectID `json:"referrers"`
	Configurable []string            `json:"configurable"`
}

// ProjectView summarizes the session.
type ProjectView struct {
	Path      string              `json:"path,omitempty"`
	Version   model.VtVersion     `json:"vt_version"`
	Objects   int                 `json:"objects"`
	Roots     []objectid.ObjectID `json:"roots"`
	Revision  uint64              `json:"revision"`
	Dirty     bool                `json:"dirty"`
	UndoLabel string              `json:"undo,omitempty"`
	RedoLabel string              `json:"redo,omitempty"`
	Sizes     render.Sizes        `json:"sizes"`
}

// SelectionView is the selection and its navigation history.
type SelectionView struct {
	Selected objectid.ObjectID   `json:"selected"`
	Back     []objectid.ObjectID `json:"back"`
	Forward  []objectid.ObjectID `json:"forward"`
}

func objectView(g *graph.Graph, obj model.Object) (ObjectView, error) {
	attrs, err := model.EncodeAttributes(obj.Attrs)
	if err != nil {
		return ObjectView{}, fmt.Errorf("object %s: %w", obj.ID, err)
	}
	name, _ := g.Name(obj.ID)
	refs := obj.Refs
	if refs == nil {
		refs = []model.Reference{}
	}
	return ObjectView{
		ID:           obj.ID,
		Type:         obj.Type(),
		TypeName:     naming.TypeName(obj.Type()),
		Name:         name,
		DisplayName:  g.DisplayName(obj.ID),
		Attributes:   attrs,
		Refs:         refs,
		Referrers:    nonNil(g.Referrers(obj.ID)),
		Configurable: configure.Attributes(obj),
	}, nil
}

func nonNil(ids []objectid.ObjectID) []objectid.ObjectID {
	if ids == nil {
		return []objectid.ObjectID{}
	}
	return ids
}

// pathID reads the {id} route variable.
func pathID(r *http.Request) (objectid.ObjectID, error) {
	id, err := objectid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return objectid.Null, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding request body: %v", errBadRequest, err)
	}
	return nil
}

// writeObject answers with the current state of one object.
func (s *Server) writeObject(w http.ResponseWriter, r *http.Request, status int, id objectid.ObjectID) {
	g := s.project.Graph()
	obj, err := g.Resolve(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := objectView(g, obj)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, view)
}

func (s *Server) projectView() ProjectView {
	g := s.project.Graph()
	return ProjectView{
		Path:      s.path,
		Version:   g.Version(),
		Objects:   g.Len(),
		Roots:     nonNil(g.Roots()),
		Revision:  s.project.Revision(),
		Dirty:     s.project.Dirty(),
		UndoLabel: s.project.UndoLabel(),
		RedoLabel: s.project.RedoLabel(),
		Sizes:     s.project.Sizes(),
	}
}

func (s *Server) selectionView() SelectionView {
	return SelectionView{
		Selected: s.project.Selected(),
		Back:     s.project.BackHistory(),
		Forward:  s.project.ForwardHistory(),
	}
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.projectView())
}

func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.project.Graph()
	objs := g.Objects()
	if name := r.URL.Query().Get("type"); name != "" {
		t, err := model.ParseObjectType(name)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		objs = g.ObjectsByType(t)
	}

	views := make([]ObjectView, 0, len(objs))
	for _, obj := range objs {
		view, err := objectView(g, obj)
		if err != nil {
			writeError(w, r, err)
			return
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetObject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeObject(w, r, http.StatusOK, id)
}

// addRequest creates an object from its template. Without an id the smallest
// free one is used.
type addRequest struct {
	Type model.ObjectType   `json:"type"`
	ID   *objectid.ObjectID `json:"id,omitempty"`
}

func (s *Server) handleAddObject(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id objectid.ObjectID
	if req.ID == nil {
		var err error
		if id, err = s.project.AddObject(req.Type); err != nil {
			writeError(w, r, err)
			return
		}
	} else {
		obj, err := model.New(*req.ID, req.Type)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", graph.ErrValidationFailed, err))
			return
		}
		if err := s.project.Insert(obj); err != nil {
			writeError(w, r, err)
			return
		}
		id = obj.ID
	}
	s.writeObject(w, r, http.StatusCreated, id)
}

func (s *Server) handleRemoveObject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cascade, _ := strconv.ParseBool(r.URL.Query().Get("cascade"))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.project.Remove(id, cascade); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeIDRequest struct {
	ID objectid.ObjectID `json:"id"`
}

func (s *Server) handleChangeID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req changeIDRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.project.ChangeID(id, req.ID); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeObject(w, r, http.StatusOK, req.ID)
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var changes []configure.Change
	if err := decodeBody(r, &changes); err != nil {
		writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.project.Configure(id, changes...); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeObject(w, r, http.StatusOK, id)
}

// renameRequest sets a custom label; an empty name clears it.
type renameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req renameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Name == "" {
		err = s.project.ClearName(id)
	} else {
		err = s.project.Rename(id, req.Name)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeObject(w, r, http.StatusOK, id)
}

func (s *Server) handleAddReference(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var ref model.Reference
	if err := decodeBody(r, &ref); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := model.ParseRole(string(ref.Role)); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.project.AddReference(id, ref); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeObject(w, r, http.StatusOK, id)
}

func (s *Server) handleRemoveReference(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	vars := mux.Vars(r)
	role, err := model.ParseRole(vars["role"])
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid index %q", errBadRequest, vars["index"]))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.project.RemoveReference(id, role, index); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeObject(w, r, http.StatusOK, id)
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	role, err := model.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.project.Graph().Candidates(id, role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(ids))
}

// handleRender answers with the render data of an object. Scenes are cached
// per revision: any change of the pool makes every cached scene stale.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.project.Graph()
	if !g.Has(id) {
		writeError(w, r, &graph.IDNotFoundError{ID: id})
		return
	}
	sizes := s.project.Sizes()
	key := fmt.Sprintf("%d/%d/%dx%d/%d", s.project.Revision(), sizes.Mask, sizes.SoftKeyWidth, sizes.SoftKeyHeight, id)
	if scene, found := s.renders.Get(key); found {
		writeJSON(w, http.StatusOK, scene)
		return
	}
	scene := render.Produce(g, id, sizes)
	s.renders.SetDefault(key, scene)
	writeJSON(w, http.StatusOK, scene)
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.selectionView())
}

// selectRequest selects an object; a null or missing id clears the selection.
type selectRequest struct {
	ID *objectid.ObjectID `json:"id"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := objectid.Null
	if req.ID != nil {
		id = *req.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.project.Select(id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.selectionView())
}

func (s *Server) handleNavigate(back bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if back {
			s.project.NavigateBack()
		} else {
			s.project.NavigateForward()
		}
		writeJSON(w, http.StatusOK, s.selectionView())
	}
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.project.Undo(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.projectView())
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.project.Redo(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.projectView())
}

// sizesRequest changes the display sizes; omitted sizes stay as they are.
type sizesRequest struct {
	Mask          *int `json:"mask"`
	SoftKeyWidth  *int `json:"soft_key_width"`
	SoftKeyHeight *int `json:"soft_key_height"`
}

func (s *Server) handleSizes(w http.ResponseWriter, r *http.Request) {
	var req sizesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sizes := s.project.Sizes()
	for _, set := range []struct {
		from *int
		to   *int
	}{
		{req.Mask, &sizes.Mask},
		{req.SoftKeyWidth, &sizes.SoftKeyWidth},
		{req.SoftKeyHeight, &sizes.SoftKeyHeight},
	} {
		if set.from != nil {
			*set.to = *set.from
		}
	}
	if err := s.project.SetSizes(sizes); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.projectView())
}

func (s *Server) handleNameAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	named, err := s.project.NameAll()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"named": named})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.projectView())
}
