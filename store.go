package launchcfg

import (
	"sort"
	"sync"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
)

var errEmptyTokenName = errors.New("empty token name")

// Store holds the token values available to the Resource Filter.
// Keys are unique; the last Set for a name wins.
type Store struct {
	sync.RWMutex

	// data maps token names to their substitution values.
	data map[string]string
}

// NewStore creates a new, empty Store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]string),
	}
}

// NewStoreFrom creates a Store populated with a copy of tokens.
func NewStoreFrom(tokens map[string]string) *Store {
	s := NewStore()
	for k, v := range tokens {
		if k != "" {
			s.data[k] = v
		}
	}
	return s
}

// Set inserts or overwrites the value for name.
func (s *Store) Set(name, value string) error {
	if name == "" {
		return errEmptyTokenName
	}
	s.Lock()
	defer s.Unlock()

	s.data[name] = value
	return nil
}

// Resolve returns the value for name, or an *UnknownTokenError.
func (s *Store) Resolve(name string) (string, error) {
	if v, ok := s.Recall(name); ok {
		return v, nil
	}
	return "", &UnknownTokenError{Name: name}
}

// Recall gets the current value for name in the Store.
func (s *Store) Recall(name string) (string, bool) {
	s.RLock()
	defer s.RUnlock()

	v, ok := s.data[name]
	return v, ok
}

// Delete removes name from the Store.
func (s *Store) Delete(name string) {
	s.Lock()
	defer s.Unlock()

	delete(s.data, name)
}

// Reset clears all stored tokens.
func (s *Store) Reset() {
	s.Lock()
	defer s.Unlock()

	for k := range s.data {
		delete(s.data, k)
	}
}

// Merge copies tokens into the Store, overwriting existing values.
func (s *Store) Merge(tokens map[string]string) error {
	if _, ok := tokens[""]; ok {
		return errEmptyTokenName
	}
	s.Lock()
	defer s.Unlock()

	if err := mergo.Merge(&s.data, tokens, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "merge tokens")
	}
	return nil
}

// Names returns the sorted token names.
func (s *Store) Names() []string {
	s.RLock()
	defer s.RUnlock()

	names := make([]string, 0, len(s.data))
	for k := range s.data {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the stored tokens.
func (s *Store) Map() map[string]string {
	s.RLock()
	defer s.RUnlock()

	m := make(map[string]string, len(s.data))
	for k, v := range s.data {
		m[k] = v
	}
	return m
}
