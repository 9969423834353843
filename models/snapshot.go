// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/nspcc-dev/go-ordered-json"
)

// ErrInvalidSnapshot is returned when a results payload does not have the
// expected shape
var ErrInvalidSnapshot = errors.New("invalid results snapshot")

// DecodeSnapshot parses a results payload, keeping the count entries in the
// order the server wrote them
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	d := json.NewDecoder(r)
	d.UseOrderedObject()
	d.UseNumber()

	var raw interface{}
	if err := d.Decode(&raw); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse results snapshot: %w", err)
	}
	if _, err := d.Token(); err != io.EOF {
		return Snapshot{}, fmt.Errorf("%w: trailing data after results object", ErrInvalidSnapshot)
	}

	top, ok := raw.(json.OrderedObject)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: top level is not an object", ErrInvalidSnapshot)
	}

	var snap Snapshot
	for _, member := range top {
		switch member.Key {
		case "count":
			tally, err := decodeTally(member.Value)
			if err != nil {
				return Snapshot{}, err
			}
			snap.Count = tally
		case "valid_chain":
			switch v := member.Value.(type) {
			case nil:
				snap.ValidChain = false
			case bool:
				snap.ValidChain = v
			default:
				return Snapshot{}, fmt.Errorf("%w: valid_chain must be a boolean", ErrInvalidSnapshot)
			}
		}
	}

	return snap, nil
}

// DecodeSnapshotBytes is DecodeSnapshot over a byte slice
func DecodeSnapshotBytes(data []byte) (Snapshot, error) {
	return DecodeSnapshot(bytes.NewReader(data))
}

func decodeTally(v interface{}) (Tally, error) {
	if v == nil {
		return nil, nil
	}

	obj, ok := v.(json.OrderedObject)
	if !ok {
		return nil, fmt.Errorf("%w: count must be an object", ErrInvalidSnapshot)
	}

	tally := make(Tally, 0, len(obj))
	index := make(map[string]int, len(obj))
	for _, member := range obj {
		votes, err := parseVotes(member.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: count for %q: %v", ErrInvalidSnapshot, member.Key, err)
		}

		// Repeated keys keep their first position and take the last value
		if i, seen := index[member.Key]; seen {
			tally[i].Votes = votes
			continue
		}
		index[member.Key] = len(tally)
		tally = append(tally, TallyEntry{Name: member.Key, Votes: votes})
	}

	return tally, nil
}

func parseVotes(v interface{}) (int64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, errors.New("not a number")
	}
	votes, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, errors.New("not an integer")
	}
	if votes < 0 {
		return 0, errors.New("negative tally")
	}
	return votes, nil
}

// MarshalJSON writes the tally as a JSON object in entry order
func (t Tally) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	obj := make(json.OrderedObject, 0, len(t))
	for _, e := range t {
		obj = append(obj, json.Member{Key: e.Name, Value: e.Votes})
	}
	return json.Marshal(obj)
}
