package tubepathfinder

import (
	"encoding/json"
	"net/http"
	"time"
)

type healthResponse struct {
	Status      string `json:"status"`
	NetworkID   string `json:"network_id"`
	Stations    int    `json:"stations"`
	Lines       int    `json:"lines"`
	Connections int    `json:"connections"`
	LoadedAt    string `json:"loaded_at"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	cur := s.current.Load()
	net := cur.finder.Network()
	resp := healthResponse{
		Status:      "ok",
		NetworkID:   net.SnapshotID.String(),
		Stations:    net.StationCount(),
		Lines:       net.LineCount(),
		Connections: net.ConnectionCount(),
		LoadedAt:    cur.loadedAt.UTC().Format(time.RFC3339),
	}
	if resp.Stations == 0 {
		resp.Status = "empty"
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
