// seed_projects.go — standalone script to load decision projects from a JSON
// file and seed them via the Themis API.
//
// Usage:
//
//	go run scripts/seed_projects.go -file /path/to/projects.json -api http://localhost:8700 -client seed
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type seedProject struct {
	Title        string          `json:"title"`
	Organization json.RawMessage `json:"organization,omitempty"`
	Criteria     json.RawMessage `json:"criteria,omitempty"`
	Comparisons  json.RawMessage `json:"comparisons,omitempty"`
	Directions   json.RawMessage `json:"directions,omitempty"`
	Alternatives json.RawMessage `json:"alternatives,omitempty"`
	Assets       json.RawMessage `json:"assets,omitempty"`
}

type createdProject struct {
	ID string `json:"project_id"`
}

func main() {
	filePath := flag.String("file", "projects.json", "path to projects JSON file")
	apiURL := flag.String("api", "http://localhost:8700", "Themis API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	evaluate := flag.Bool("evaluate", false, "run prioritization after seeding each project")
	dryRun := flag.Bool("dry-run", false, "print projects without posting")
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read %s: %v", *filePath, err)
	}

	var projects []seedProject
	if err := json.Unmarshal(data, &projects); err != nil {
		log.Fatalf("parse %s: %v", *filePath, err)
	}

	log.Printf("parsed %d projects from %s", len(projects), *filePath)

	if *dryRun {
		for i, p := range projects {
			fmt.Printf("[%d] %s (criteria=%t, comparisons=%t, alternatives=%t, assets=%t)\n",
				i+1, p.Title, p.Criteria != nil, p.Comparisons != nil, p.Alternatives != nil, p.Assets != nil)
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, p := range projects {
		id, err := post(client, *apiURL, *clientID, p)
		if err != nil {
			log.Printf("skip %q: %v", p.Title, err)
			skipped++
			continue
		}
		created++

		if *evaluate && p.Comparisons != nil && p.Alternatives != nil {
			if err := prioritize(client, *apiURL, *clientID, id); err != nil {
				log.Printf("prioritize %q: %v", p.Title, err)
			}
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}

func post(client *http.Client, apiURL, clientID string, p seedProject) (string, error) {
	body, _ := json.Marshal(map[string]json.RawMessage{
		"title":        json.RawMessage(fmt.Sprintf("%q", p.Title)),
		"organization": orEmpty(p.Organization),
	})
	req, err := http.NewRequest("POST", apiURL+"/api/v1/projects", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", clientID)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var cp createdProject
	if err := json.NewDecoder(resp.Body).Decode(&cp); err != nil {
		return "", err
	}

	// Second call fills in the decision inputs the create endpoint does not take.
	patch, _ := json.Marshal(p)
	req, err = http.NewRequest("PUT", apiURL+"/api/v1/projects/"+cp.ID, bytes.NewReader(patch))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", clientID)

	resp, err = client.Do(req)
	if err != nil {
		return "", err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("update status %d", resp.StatusCode)
	}
	return cp.ID, nil
}

func prioritize(client *http.Client, apiURL, clientID, id string) error {
	req, err := http.NewRequest("POST", apiURL+"/api/v1/projects/"+id+"/prioritize", nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Client-ID", clientID)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func orEmpty(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return json.RawMessage(`{}`)
	}
	return raw
}
