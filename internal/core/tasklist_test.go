package core

import (
	"testing"

	"github.com/valter-silva-au/primo/pkg/models"
)

func TestTaskList_CopySemantics(t *testing.T) {
	src := []models.Task{models.NewTodo("a", "")}
	l := NewTaskList(src)
	src[0].Description = "changed"

	if got, _ := l.Get(0); got.Description != "a" {
		t.Errorf("NewTaskList should copy its input, got %q", got.Description)
	}

	all := l.All()
	all[0].Done = true
	if got, _ := l.Get(0); got.Done {
		t.Error("All should return a copy")
	}
}

func TestTaskList_RangeChecks(t *testing.T) {
	l := NewTaskList(nil)
	if _, err := l.Mark(0); KindOf(err) != ErrIndexOutOfRange {
		t.Errorf("Mark on empty list: kind = %s", KindOf(err))
	}

	l.Add(models.NewTodo("a", ""))
	l.Add(models.NewTodo("b", ""))

	for _, i := range []int{-1, 2, 10} {
		if _, err := l.Get(i); KindOf(err) != ErrIndexOutOfRange {
			t.Errorf("Get(%d): kind = %s", i, KindOf(err))
		}
		if _, err := l.Unmark(i); KindOf(err) != ErrIndexOutOfRange {
			t.Errorf("Unmark(%d): kind = %s", i, KindOf(err))
		}
		if _, err := l.Remove(i); KindOf(err) != ErrIndexOutOfRange {
			t.Errorf("Remove(%d): kind = %s", i, KindOf(err))
		}
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
}

func TestTaskList_RemoveShifts(t *testing.T) {
	l := NewTaskList([]models.Task{
		models.NewTodo("a", ""),
		models.NewTodo("b", ""),
		models.NewTodo("c", ""),
	})

	removed, err := l.Remove(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.Description != "a" {
		t.Errorf("removed %q, want a", removed.Description)
	}
	if got, _ := l.Get(0); got.Description != "b" {
		t.Errorf("position 0 = %q, want b", got.Description)
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
}

func TestTaskList_FindNoMatch(t *testing.T) {
	l := NewTaskList([]models.Task{models.NewTodo("a", "")})
	if got := l.Find("zzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}
