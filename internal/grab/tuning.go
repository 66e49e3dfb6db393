package grab

import (
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Tuning holds every numeric/boolean knob of the grab subsystem. All fields
// are plain data so the debug overlay can bind sliders straight to them and
// a YAML file can override any subset.
type Tuning struct {
	PickupRange    float32 `yaml:"pickupRange"`
	HighlightRange float32 `yaml:"highlightRange"`
	PuntRange      float32 `yaml:"puntRange"`
	ProbeRadius    float32 `yaml:"probeRadius"`
	MaxPickupMass  float32 `yaml:"maxPickupMass"`

	MinHoldDistance float32 `yaml:"minHoldDistance"`
	MaxHoldDistance float32 `yaml:"maxHoldDistance"`
	ScrollStep      float32 `yaml:"scrollStep"`

	SpringKp   float32 `yaml:"springKp"`
	SpringKd   float32 `yaml:"springKd"`
	RotationKp float32 `yaml:"rotationKp"`
	RotationKd float32 `yaml:"rotationKd"`
	MaxForce   float32 `yaml:"maxForce"`
	MaxTorque  float32 `yaml:"maxTorque"`

	ThrowImpulse float32 `yaml:"throwImpulse"`
	PuntImpulse  float32 `yaml:"puntImpulse"`

	HeldLinearDamping  float32 `yaml:"heldLinearDamping"`
	HeldAngularDamping float32 `yaml:"heldAngularDamping"`

	KeepUpright bool `yaml:"keepUpright"`

	// Weight of the view-alignment term in candidate scoring. The default
	// of 3 is a tuned value, not a derived one.
	AlignmentWeight float32 `yaml:"alignmentWeight"`
}

func DefaultTuning() Tuning {
	return Tuning{
		PickupRange:        12.0,
		HighlightRange:     12.0,
		PuntRange:          18.0,
		ProbeRadius:        0.6,
		MaxPickupMass:      120.0,
		MinHoldDistance:    1.5,
		MaxHoldDistance:    10.0,
		ScrollStep:         0.5,
		SpringKp:           60.0,
		SpringKd:           10.0,
		RotationKp:         30.0,
		RotationKd:         4.0,
		MaxForce:           3000.0,
		MaxTorque:          300.0,
		ThrowImpulse:       18.0,
		PuntImpulse:        12.0,
		HeldLinearDamping:  4.0,
		HeldAngularDamping: 6.0,
		KeepUpright:        true,
		AlignmentWeight:    3.0,
	}
}

// LoadTuning reads a YAML tuning file. Fields absent from the file keep
// their defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), err
	}
	return t, nil
}

// TuningWatcher reloads the tuning file when it changes on disk. Reloads are
// delivered through Poll so they land on the game loop's thread.
type TuningWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	pending chan Tuning
}

// WatchTuning starts watching the tuning file's directory. The file itself
// may not exist yet; it is picked up on first write.
func WatchTuning(path string) (*TuningWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	tw := &TuningWatcher{
		watcher: watcher,
		path:    filepath.Clean(path),
		pending: make(chan Tuning, 1),
	}
	go tw.run()
	return tw, nil
}

func (tw *TuningWatcher) run() {
	for {
		select {
		case ev, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != tw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			t, err := LoadTuning(tw.path)
			if err != nil {
				log.Printf("tuning: reload failed, keeping current values: %v", err)
				continue
			}
			// Keep only the newest pending reload
			select {
			case <-tw.pending:
			default:
			}
			tw.pending <- t
		case _, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Poll returns a freshly reloaded tuning, if one arrived since the last call.
func (tw *TuningWatcher) Poll() (Tuning, bool) {
	select {
	case t := <-tw.pending:
		return t, true
	default:
		return Tuning{}, false
	}
}

func (tw *TuningWatcher) Close() error {
	return tw.watcher.Close()
}
