// Package trackers implements Trackers, which track and save data
// generated during an experiment
package trackers

import (
	"encoding/gob"
	"log"
	"os"

	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished. Experiments send every TimeStep
// they generate to their Trackers through the Track() method, and each
// Tracker decides which data from the TimeStep it caches. The Save()
// method then writes all cached data to disk.
type Tracker interface {
	Track(t ts.TimeStep)
	Save()
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) []float64 {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	// Create the decoder and the variable to store the data in
	dec := gob.NewDecoder(file)
	var data []float64

	// Decode the data
	err = dec.Decode(&data)
	if err != nil {
		log.Fatalf("could not decode data: %v", err)
	}

	return data
}
