package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"recordkit/internal/config"
	"recordkit/internal/models"
)

func main() {
	cfg := config.Load()

	record := models.NewRecord()
	for k, v := range cfg.Attributes {
		if err := record.Set(k, v); err != nil {
			log.Printf("[ERROR] main(): skip attribute %q: %v", k, err)
		}
	}
	log.Println(record)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record.ToDict()); err != nil {
		log.Fatalf("main(): Failed to encode record: %v", err)
	}

	for i := 0; i < cfg.Saves; i++ {
		time.Sleep(cfg.Interval)
		record.Save()
	}
	exported := record.ToDict()
	if err := enc.Encode(exported); err != nil {
		log.Fatalf("main(): Failed to encode record: %v", err)
	}

	// 외부 저장소가 받는 형태(json)를 거쳐 복원
	raw, err := json.Marshal(exported)
	if err != nil {
		log.Fatalf("main(): Failed to marshal record: %v", err)
	}
	var stored map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Fatalf("main(): Failed to unmarshal record: %v", err)
	}
	restored, err := models.FromDict(stored)
	if err != nil {
		log.Fatalf("main(): Failed to restore record: %v", err)
	}

	again := restored.Base().ToDict()
	if again["id"] != exported["id"] || again["created_at"] != exported["created_at"] || again["updated_at"] != exported["updated_at"] {
		log.Fatalf("main(): round trip mismatch: %v != %v", again, exported)
	}
	log.Printf("main(): %s restored successfully!", restored.Base().ID)
}
