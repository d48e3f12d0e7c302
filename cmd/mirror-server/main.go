package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Serves recorded upstream responses so the fetchers can run without
// internet access. Point MEMEHUB_IMGFLIP_URL / MEMEHUB_REDDIT_URL at
// this server during development.
//
//	GET /get_memes          -> data/imgflip.json
//	GET /r/<sub>/top.json   -> data/reddit/<sub>.json
func main() {
	dataDir := "data"

	http.HandleFunc("/get_memes", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, filepath.Join(dataDir, "imgflip.json"))
	})

	http.HandleFunc("/r/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[2] != "top.json" {
			http.NotFound(w, r)
			return
		}
		serveJSON(w, filepath.Join(dataDir, "reddit", parts[1]+".json"))
	})

	log.Println("mirror-server listening on http://localhost:9000")
	log.Fatal(http.ListenAndServe(":9000", nil))
}

func serveJSON(w http.ResponseWriter, path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, "cannot read "+path+": "+err.Error(), http.StatusInternalServerError)
		return
	}
	// validate JSON so a bad fixture doesn't silently break
	var tmp any
	if err := json.Unmarshal(b, &tmp); err != nil {
		http.Error(w, path+" invalid JSON: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
