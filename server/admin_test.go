package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminRoomsListing(t *testing.T) {
	w, tr := newTestWorld()
	c1 := &fakeConn{id: "c1"}
	c2 := &fakeConn{id: "c2"}
	doJoin(t, w, tr, c1, "lobby", "Ann", "azul_escuro")
	doJoin(t, w, tr, c2, "lobby", "Ben", "ciano")
	admin := &AdminServer{World: w}

	req := httptest.NewRequest(http.MethodGet, "/admin/rooms", nil)
	rec := httptest.NewRecorder()
	admin.HandleRooms(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var infos []RoomInfo
	if err := json.NewDecoder(rec.Body).Decode(&infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 1 || infos[0].Room != "lobby" || infos[0].Players != 2 {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestAdminRoomRoster(t *testing.T) {
	w, tr := newTestWorld()
	c := &fakeConn{id: "c1"}
	id := doJoin(t, w, tr, c, "lobby", "Ann", "azul_escuro")
	admin := &AdminServer{World: w}

	req := httptest.NewRequest(http.MethodGet, "/admin/rooms?room=lobby", nil)
	rec := httptest.NewRecorder()
	admin.HandleRooms(rec, req)

	var payload struct {
		Room    string                     `json:"room"`
		Players map[string]RoomPlayerState `json:"players"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Room != "lobby" || payload.Players[id].Name != "Ann" {
		t.Fatalf("unexpected roster: %+v", payload)
	}
}

func TestAdminRoomsRejectsMutation(t *testing.T) {
	admin := &AdminServer{World: NewWorld(&fakeTransport{})}

	req := httptest.NewRequest(http.MethodPost, "/admin/rooms", nil)
	rec := httptest.NewRecorder()
	admin.HandleRooms(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestMetricsSnapshotTracksProtocol(t *testing.T) {
	w, tr := newTestWorld()
	c := &fakeConn{id: "c1"}
	id := doJoin(t, w, tr, c, "lobby", "Ann", "azul_escuro")
	w.HandleMove(c, MoveRequest{Room: "lobby", PlayerID: id, X: json.RawMessage(`3`)})
	w.HandleLeave(c, LeaveRequest{Room: "lobby", PlayerID: id})
	admin := &AdminServer{World: w}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	admin.HandleMetrics(rec, req)

	var payload struct {
		Rooms   int              `json:"rooms"`
		Players int              `json:"players"`
		Metrics map[string]int64 `json:"metrics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Rooms != 0 || payload.Players != 0 {
		t.Fatalf("counts = (%d,%d), want (0,0)", payload.Rooms, payload.Players)
	}
	if payload.Metrics["joins"] != 1 || payload.Metrics["moves_applied"] != 1 || payload.Metrics["leaves"] != 1 {
		t.Fatalf("unexpected metrics: %+v", payload.Metrics)
	}
}
