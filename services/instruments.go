package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/purge-dev/CliniCord/models"
)

// InstrumentCatalog is the read-only set of instruments the engine can
// administer. Every instrument is validated on the way in, so consumers may
// treat anything the catalog hands out as structurally sound.
type InstrumentCatalog interface {
	Get(instrumentID string) (*models.Instrument, bool)
	List() []*models.Instrument
}

type instrumentCatalog struct {
	byID  map[string]*models.Instrument
	order []string
}

// NewInstrumentCatalog builds a catalog from the built-in instruments plus
// any YAML definitions found under instrumentDir (empty means built-ins
// only). A MalformedInstrumentError from any instrument aborts loading;
// the process must not start with a broken instrument.
func NewInstrumentCatalog(instrumentDir string) (InstrumentCatalog, error) {
	instruments := []models.Instrument{defaultBDIInstrument()}

	if instrumentDir != "" {
		loaded, err := loadInstrumentDir(instrumentDir)
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, loaded...)
	}

	return newInstrumentCatalog(instruments)
}

// newInstrumentCatalog validates and indexes a fixed set of instruments.
func newInstrumentCatalog(instruments []models.Instrument) (InstrumentCatalog, error) {
	c := &instrumentCatalog{byID: make(map[string]*models.Instrument)}
	for i := range instruments {
		in := &instruments[i]
		if err := in.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[in.ID]; dup {
			return nil, &models.MalformedInstrumentError{InstrumentID: in.ID, Reason: "duplicate instrument ID"}
		}
		c.byID[in.ID] = in
		c.order = append(c.order, in.ID)
		log.Printf("INFO: [InstrumentCatalog] Loaded instrument '%s' (%d questions, max total %d).", in.ID, len(in.Questions), in.MaxTotal())
	}
	return c, nil
}

// Get returns the instrument with the given ID, if the catalog holds one.
func (c *instrumentCatalog) Get(instrumentID string) (*models.Instrument, bool) {
	in, ok := c.byID[instrumentID]
	return in, ok
}

// List returns every instrument in load order.
func (c *instrumentCatalog) List() []*models.Instrument {
	out := make([]*models.Instrument, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// loadInstrumentDir reads every .yaml/.yml file in dir as one instrument
// definition. Files are loaded in lexical order so the catalog is stable
// across runs.
func loadInstrumentDir(dir string) ([]models.Instrument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read instrument directory '%s': %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var instruments []models.Instrument
	for _, name := range files {
		path := filepath.Join(dir, name)
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read instrument file '%s': %w", path, err)
		}
		var in models.Instrument
		if err := v.Unmarshal(&in); err != nil {
			return nil, fmt.Errorf("failed to parse instrument file '%s': %w", path, err)
		}
		log.Printf("INFO: [InstrumentCatalog] Read instrument definition from '%s'.", path)
		instruments = append(instruments, in)
	}
	return instruments, nil
}
