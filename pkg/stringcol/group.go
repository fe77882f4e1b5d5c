package stringcol

// GroupKey identifies a group of rows with the same value. All null rows
// share [NullKey], which never equals the key of a real string.
type GroupKey struct {
	Value string
	Null  bool
}

// NullKey is the group key of null rows.
var NullKey = GroupKey{Null: true}

// GroupColumnValues maps every distinct value of the column to the indices
// of the rows holding it, in ascending order.
func (c *Column) GroupColumnValues() map[GroupKey][]int64 {
	groups := make(map[GroupKey][]int64)
	for row, value := range c.All() {
		key := NullKey
		if value != nil {
			key = GroupKey{Value: *value}
		}
		groups[key] = append(groups[key], row)
	}
	return groups
}
