package export

import (
	"sort"
	"time"
)

// Dedup collapses messages sharing an identity key. The later occurrence
// wins while keeping the position of the first, so re-exported logs with
// overlapping ranges reduce to one copy of each message.
func Dedup(msgs []Message) []Message {
	pos := make(map[string]int, len(msgs))
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if i, seen := pos[m.ID]; seen {
			out[i] = m
			continue
		}
		pos[m.ID] = len(out)
		out = append(out, m)
	}
	return out
}

// SortByTime orders messages ascending by timestamp, in place. The sort is
// stable: equal timestamps keep their input order.
func SortByTime(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
}

// Partition splits chronologically ordered messages at the cutoff. A
// message is new only when strictly after the cutoff; one timestamped
// exactly at the cutoff counts as previous. Nil cutoff means everything is
// new. Both halves keep their chronological order.
func Partition(msgs []Message, cutoff *time.Time) (newMsgs, prevMsgs []Message) {
	if cutoff == nil {
		return msgs, nil
	}
	for _, m := range msgs {
		if m.Timestamp.After(*cutoff) {
			newMsgs = append(newMsgs, m)
		} else {
			prevMsgs = append(prevMsgs, m)
		}
	}
	return newMsgs, prevMsgs
}
