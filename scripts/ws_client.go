// Command ws_client is a demo WebSocket client for run events.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	body := []byte(`{
		"vehicles": [{"id": 1, "capacity": [10], "shiftStart": 0, "shiftEnd": 36000, "startLat": 40.0, "startLng": -74.0, "endLat": 40.0, "endLng": -74.0}],
		"jobs": [{"id": 1, "lat": 40.01, "lng": -74.0, "amount": [1], "serviceSec": 60}]
	}`)
	req, _ := http.NewRequest(http.MethodPost, base+"/v1/optimize", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-Id", "t_demo")
	req.Header.Set("X-Role", "admin")

	u := url.URL{Scheme: "ws", Host: "localhost:" + port}
	hdr := http.Header{"X-Tenant-Id": {"t_demo"}, "X-Role": {"admin"}}

	// Subscribing before the optimize call completes requires knowing
	// the run ID up front; in practice a client would POST first, read
	// the runId from the response, then dial the stream. This demo
	// does exactly that, accepting the gap between run creation and
	// subscribe as acceptable for a short-lived local search.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	var optResp struct {
		RunID string `json:"runId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&optResp); err != nil {
		log.Fatal(err)
	}
	log.Printf("run id: %s", optResp.RunID)

	u.Path = "/v1/runs/" + optResp.RunID + "/events/stream"
	c, _, err := websocket.DefaultDialer.Dial(u.String(), hdr)
	if err != nil {
		log.Printf("dial (run likely already finished): %v", err)
		return
	}
	defer func() { _ = c.Close() }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var evt map[string]any
			if err := c.ReadJSON(&evt); err != nil {
				return
			}
			log.Printf("round event: %v", evt)
		}
	}()

	select {
	case <-time.After(2 * time.Second):
	case <-done:
	}
}
