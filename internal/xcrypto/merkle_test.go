package xcrypto

import "testing"

func TestMerkleRootEmpty(t *testing.T) {
	root := MerkleRoot(nil)
	if !root.IsZero() {
		t.Fatalf("empty tree root must be all-zero, got %x", root)
	}
}

func TestMerkleRootSingle(t *testing.T) {
	root := MerkleRoot([][]byte{[]byte("only")})
	want := Blake3([]byte("only"))
	if root != want {
		t.Fatalf("single-leaf root must equal the leaf hash: got %x want %x", root, want)
	}
}

func TestMerkleRootPairBindsRawValues(t *testing.T) {
	root := MerkleRoot([][]byte{[]byte("a"), []byte("b")})
	want := Blake3Node([]byte("a"), []byte("b"))
	if root != want {
		t.Fatalf("pair root mismatch: got %x want %x", root, want)
	}
}

func TestMerkleRootOddLiftedRaw(t *testing.T) {
	// Three leaves: ("0","1") combine, "2" is lifted unchanged — still
	// the raw value — to the next level, where it pairs with the first
	// pair's node digest.
	parent01 := Blake3Node([]byte("0"), []byte("1"))
	want := Blake3Node(parent01.Bytes(), []byte("2"))

	got := MerkleRoot([][]byte{[]byte("0"), []byte("1"), []byte("2")})
	if got != want {
		t.Fatalf("odd-leaf lift mismatch: got %x want %x", got, want)
	}
}

func TestMerkleRootFourLeaves(t *testing.T) {
	n01 := Blake3Node([]byte("w"), []byte("x"))
	n23 := Blake3Node([]byte("y"), []byte("z"))
	want := Blake3Node(n01.Bytes(), n23.Bytes())

	got := MerkleRoot([][]byte{[]byte("w"), []byte("x"), []byte("y"), []byte("z")})
	if got != want {
		t.Fatalf("four-leaf root mismatch: got %x want %x", got, want)
	}
}

func TestMerkleRootDeterministic(t *testing.T) {
	vals := [][]byte{[]byte("x"), []byte("y"), []byte("z"), []byte("w")}
	r1 := MerkleRoot(vals)
	r2 := MerkleRoot(vals)
	if r1 != r2 {
		t.Fatalf("merkle root must be deterministic for identical input")
	}
}
