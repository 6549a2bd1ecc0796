package logging

import "time"

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Err records err under "error"; a nil error is recorded as null.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Component tags entries with the emitting subsystem.
func Component(name string) Field { return String("component", name) }

// Node tags entries with a graph node index.
func Node(id int) Field { return Int("node", id) }

// Batch tags entries with a trigger batch id.
func Batch(id uint64) Field { return Uint64("batch", id) }

// Count tags entries with a quantity.
func Count(n int) Field { return Int("count", n) }

// Path tags entries with a URL path.
func Path(p string) Field { return String("path", p) }
