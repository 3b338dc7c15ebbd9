package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// ============================================================================
// Helper Functions
// ============================================================================

func userFromRecord(record *neo4j.Record) *User {
	return &User{
		UserID:     getInt64FromRecord(record, "user_id"),
		FacebookID: getInt64FromRecord(record, "facebook_id"),
		Created:    getTimeFromRecord(record, "created"),
	}
}

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return 0
}

func getTimeFromRecord(record *neo4j.Record, key string) time.Time {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return time.Time{}
	}
	return asTime(val)
}

func getMapFromRecord(record *neo4j.Record, key string) map[string]any {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return map[string]any{}
	}
	if m, ok := val.(map[string]any); ok {
		// Normalize temporal values so callers only ever see time.Time
		for k, v := range m {
			if t, ok := v.(dbtype.Time); ok {
				m[k] = t.Time()
			} else if d, ok := v.(dbtype.LocalDateTime); ok {
				m[k] = d.Time()
			}
		}
		return m
	}
	return map[string]any{}
}

// asTime converts the temporal value shapes the driver can hand back
func asTime(val any) time.Time {
	switch t := val.(type) {
	case time.Time:
		return t
	case dbtype.Time:
		return t.Time()
	case dbtype.LocalDateTime:
		return t.Time()
	}
	return time.Time{}
}
