package export

import (
	"testing"
	"time"
)

func msgAt(t time.Time, sender, text string) Message {
	raw := t.Format("2/1/06, 3:04:05 PM")
	return Message{
		ID:           identityKey(raw, sender, text),
		RawTimestamp: raw,
		Timestamp:    t,
		Sender:       sender,
		Text:         text,
	}
}

func TestDedup_KeepsOne(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)
	a := msgAt(ts, "Alice", "hello")
	b := msgAt(ts, "Alice", "hello") // same sender, timestamp text and body
	c := msgAt(ts, "Bob", "hello")

	out := Dedup([]Message{a, b, c})
	if len(out) != 2 {
		t.Fatalf("got %d messages, want 2", len(out))
	}
	if out[0].Sender != "Alice" || out[1].Sender != "Bob" {
		t.Errorf("order not preserved: %v, %v", out[0].Sender, out[1].Sender)
	}
}

func TestDedup_DoesNotMutateInput(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)
	in := []Message{msgAt(ts, "Alice", "a"), msgAt(ts, "Alice", "a")}
	Dedup(in)
	if len(in) != 2 {
		t.Errorf("input slice mutated, len %d", len(in))
	}
}

func TestSortByTime_Stable(t *testing.T) {
	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)
	msgs := []Message{
		msgAt(base.Add(time.Minute), "B", "second"),
		msgAt(base, "A1", "tie first"),
		msgAt(base, "A2", "tie second"),
	}
	SortByTime(msgs)
	if msgs[0].Sender != "A1" || msgs[1].Sender != "A2" || msgs[2].Sender != "B" {
		t.Errorf("order = %s, %s, %s", msgs[0].Sender, msgs[1].Sender, msgs[2].Sender)
	}
}

func TestPartition_NoCutoff(t *testing.T) {
	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)
	msgs := []Message{msgAt(base, "A", "x"), msgAt(base.Add(time.Minute), "B", "y")}

	newMsgs, prevMsgs := Partition(msgs, nil)
	if len(newMsgs) != 2 || len(prevMsgs) != 0 {
		t.Errorf("got %d new, %d previous; want 2, 0", len(newMsgs), len(prevMsgs))
	}
}

func TestPartition_BoundaryIsPrevious(t *testing.T) {
	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)
	msgs := []Message{
		msgAt(base.Add(-time.Minute), "A", "before"),
		msgAt(base, "B", "exactly at cutoff"),
		msgAt(base.Add(time.Minute), "C", "after"),
	}

	newMsgs, prevMsgs := Partition(msgs, &base)
	if len(newMsgs) != 1 || newMsgs[0].Sender != "C" {
		t.Errorf("new = %v", newMsgs)
	}
	if len(prevMsgs) != 2 {
		t.Fatalf("previous = %v", prevMsgs)
	}
	if prevMsgs[1].Sender != "B" {
		t.Errorf("boundary message should be previous, got %v", prevMsgs)
	}
}

func TestPartition_PreservesOrder(t *testing.T) {
	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)
	var msgs []Message
	for i := 0; i < 6; i++ {
		msgs = append(msgs, msgAt(base.Add(time.Duration(i)*time.Minute), "S", string(rune('a'+i))))
	}
	cutoff := base.Add(2 * time.Minute)

	newMsgs, prevMsgs := Partition(msgs, &cutoff)
	for i := 1; i < len(newMsgs); i++ {
		if newMsgs[i].Timestamp.Before(newMsgs[i-1].Timestamp) {
			t.Fatal("new half out of order")
		}
	}
	for i := 1; i < len(prevMsgs); i++ {
		if prevMsgs[i].Timestamp.Before(prevMsgs[i-1].Timestamp) {
			t.Fatal("previous half out of order")
		}
	}
	if len(prevMsgs) != 3 || len(newMsgs) != 3 {
		t.Errorf("split = %d/%d, want 3/3", len(newMsgs), len(prevMsgs))
	}
}
