// Package shard provides partition and sort key generation for mirrored records.
package shard

import (
	"fmt"
	"hash/fnv"
	"strings"
)

const recordPrefix = "record#"

// StorePrefix returns the partition key prefix shared by every shard of a store.
func StorePrefix(storeID string) string {
	return "store#" + storeID
}

// RecordPK computes the sharded partition key for a record.
// With numShards=1, all records go to shard "00".
// With numShards>1, records are distributed across shards based on the key hash.
func RecordPK(storeID, key string, numShards int) string {
	if numShards <= 1 {
		return fmt.Sprintf("%s#00", StorePrefix(storeID))
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	shard := h.Sum32() % uint32(numShards)
	return fmt.Sprintf("%s#%02x", StorePrefix(storeID), shard)
}

// ShardPK returns the partition key of one numbered shard of a store.
func ShardPK(storeID string, shard int) string {
	return fmt.Sprintf("%s#%02x", StorePrefix(storeID), shard)
}

// RecordSK returns the sort key of a record.
func RecordSK(key string) string {
	return recordPrefix + key
}

// KeyFromSK extracts the record key from a sort key. It reports false for
// sort keys that do not belong to a record.
func KeyFromSK(sk string) (string, bool) {
	if !strings.HasPrefix(sk, recordPrefix) || len(sk) == len(recordPrefix) {
		return "", false
	}
	return sk[len(recordPrefix):], true
}
