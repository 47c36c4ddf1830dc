package launchcfg

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewStore(t *testing.T) {
	t.Parallel()
	st := NewStore()

	if st.data == nil {
		t.Errorf("expected data to not be nil")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	st := NewStore()

	if err := st.Set("version", "3.0.0"); err != nil {
		t.Fatal(err)
	}

	v, err := st.Resolve("version")
	if err != nil {
		t.Fatal(err)
	}
	if v != "3.0.0" {
		t.Errorf("expected %q to be %q", v, "3.0.0")
	}

	_, err = st.Resolve("missing")
	var unknown *UnknownTokenError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTokenError, got %v", err)
	}
	if unknown.Name != "missing" {
		t.Errorf("expected %q to be %q", unknown.Name, "missing")
	}
}

func TestSetOverwrites(t *testing.T) {
	t.Parallel()
	st := NewStore()

	st.Set("artifact", "old")
	st.Set("artifact", "launcher")

	if v, _ := st.Recall("artifact"); v != "launcher" {
		t.Errorf("expected %q to be %q", v, "launcher")
	}
	if n := len(st.Names()); n != 1 {
		t.Errorf("expected 1 token, got %d", n)
	}
}

func TestSetEmptyName(t *testing.T) {
	t.Parallel()
	st := NewStore()

	if err := st.Set("", "x"); err == nil {
		t.Fatal("expected error")
	}
	if n := len(st.Names()); n != 0 {
		t.Errorf("expected no tokens, got %d", n)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	st := NewStoreFrom(map[string]string{"group": "com.openosrs"})
	st.Delete("group")

	if _, ok := st.Recall("group"); ok {
		t.Errorf("expected %q to be deleted", "group")
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	st := NewStoreFrom(map[string]string{"a": "1", "b": "2"})
	st.Reset()

	if n := len(st.Names()); n != 0 {
		t.Errorf("expected no tokens, got %d", n)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()
	st := NewStoreFrom(map[string]string{"version": "3.0.0", "artifact": "launcher"})

	err := st.Merge(map[string]string{"version": "3.0.1", "group": "com.openosrs"})
	if err != nil {
		t.Fatal(err)
	}

	exp := map[string]string{
		"version":  "3.0.1",
		"artifact": "launcher",
		"group":    "com.openosrs",
	}
	if act := st.Map(); !reflect.DeepEqual(act, exp) {
		t.Errorf("\nexp: %#v\nact: %#v", exp, act)
	}

	if err := st.Merge(map[string]string{"": "x"}); err == nil {
		t.Error("expected error merging an empty name")
	}
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()
	st := NewStoreFrom(map[string]string{"version": "", "artifact": "", "basedir": ""})

	exp := []string{"artifact", "basedir", "version"}
	if act := st.Names(); !reflect.DeepEqual(act, exp) {
		t.Errorf("expected %v to be %v", act, exp)
	}
}

func TestMapIsCopy(t *testing.T) {
	t.Parallel()
	st := NewStoreFrom(map[string]string{"version": "3.0.0"})

	m := st.Map()
	m["version"] = "changed"

	if v, _ := st.Recall("version"); v != "3.0.0" {
		t.Errorf("store changed through Map copy: %q", v)
	}
}
