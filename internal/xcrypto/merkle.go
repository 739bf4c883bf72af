package xcrypto

// MerkleRoot computes the binary Merkle root over values in the given
// order (the storage engine supplies them via ordered column
// iteration). Raw values are paired directly at the first level and
// combined with Blake3Node; leaves are NOT pre-hashed, so the node
// hash binds the values themselves. An unpaired trailing node at any
// level is lifted to the next level unchanged (still raw if it has
// never met a sibling) rather than duplicated, so the root is
// sensitive to the exact leaf count. The empty tree has root equal to
// the all-zero hash; a single-value tree has root Blake3(value).
func MerkleRoot(values [][]byte) Hash {
	if len(values) == 0 {
		return Hash{}
	}
	if len(values) == 1 {
		return Blake3(values[0])
	}

	level := values
	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				node := Blake3Node(level[i], level[i+1])
				next = append(next, node.Bytes())
			} else {
				// Unpaired trailing node: lift unchanged, do not duplicate.
				next = append(next, level[i])
			}
		}
		level = next
	}

	var root Hash
	copy(root[:], level[0])
	return root
}
