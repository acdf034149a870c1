package h264meta

// mdpmEntry is one decoded tag-directory entry: the raw 4-byte value, or
// 4×(1+combined) bytes when consecutive entries were merged, plus the
// entry index range it covers.
type mdpmEntry struct {
	tag        byte
	value      []byte
	firstIndex int
	lastIndex  int
}

// walkMDPM decodes the tag directory that follows the UUID and marker: a
// one-byte entry count, then 1-byte tag + 4-byte value entries. Tag IDs
// must strictly increase; a violation halts the walk and returns false,
// with everything before it already forwarded. Tags with a declared
// combine arity absorb that many following entries when their IDs are
// consecutive and the payload still holds them; merging stops early at
// the first entry that does not qualify.
func walkMDPM(payload []byte, emit func(mdpmEntry)) bool {
	if len(payload) < 1 {
		return true
	}
	num := int(payload[0])
	pos := 1
	lastTag := -1
	for i := 0; i < num; i++ {
		if pos+5 > len(payload) {
			return true
		}
		tag := payload[pos]
		if int(tag) <= lastTag {
			return false
		}
		lastTag = int(tag)
		entry := mdpmEntry{
			tag:        tag,
			value:      payload[pos+1 : pos+5],
			firstIndex: i,
			lastIndex:  i,
		}
		pos += 5
		if c := mdpmCombineCount(tag); c > 0 {
			merged := append([]byte(nil), entry.value...)
			for j := 0; j < c; j++ {
				if i+1 >= num || pos+5 > len(payload) {
					break
				}
				if int(payload[pos]) != lastTag+1 {
					break
				}
				lastTag++
				merged = append(merged, payload[pos+1:pos+5]...)
				pos += 5
				i++
				entry.lastIndex = i
			}
			entry.value = merged
		}
		emit(entry)
	}
	return true
}
