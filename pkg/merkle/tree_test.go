package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zbridge/relay/internal/xcrypto"
)

func TestBuildTreeSingleValueRootEqualsLeafHash(t *testing.T) {
	tree, err := BuildTree([][]byte{[]byte("only value")})
	require.NoError(t, err)
	require.Equal(t, 1, tree.LeafCount())
	require.Equal(t, xcrypto.Blake3([]byte("only value")), tree.Root())
}

func TestBuildTreeTwoValuesMatchesBlake3NodeOverRawValues(t *testing.T) {
	tree, err := BuildTree([][]byte{[]byte("a"), []byte("b")})
	require.NoError(t, err)

	want := xcrypto.Blake3Node([]byte("a"), []byte("b"))
	require.Equal(t, want, tree.Root())
}

func TestTreeRootMatchesXcryptoMerkleRootForSameValues(t *testing.T) {
	values := [][]byte{[]byte("v1"), []byte("v2"), []byte("v3")}
	tree, err := BuildTree(values)
	require.NoError(t, err)
	require.Equal(t, xcrypto.MerkleRoot(values), tree.Root())
}

func TestGenerateProofVerifiesForEveryLeafFourValues(t *testing.T) {
	values := [][]byte{[]byte("w"), []byte("x"), []byte("y"), []byte("z")}
	tree, err := BuildTree(values)
	require.NoError(t, err)

	for i, v := range values {
		proof, err := tree.GenerateProof(i)
		require.NoError(t, err)
		require.Len(t, proof.Path, 2)

		ok, err := VerifyProof(v, proof, tree.Root())
		require.NoError(t, err)
		require.True(t, ok, "leaf %d should verify", i)
	}
}

func TestGenerateProofHandlesOddLeafCount(t *testing.T) {
	values := [][]byte{[]byte("1"), []byte("2"), []byte("3")}
	tree, err := BuildTree(values)
	require.NoError(t, err)

	for i, v := range values {
		proof, err := tree.GenerateProof(i)
		require.NoError(t, err)
		ok, err := VerifyProof(v, proof, tree.Root())
		require.NoError(t, err)
		require.True(t, ok, "leaf %d should verify", i)
	}
}

func TestVerifyProofRejectsWrongLeafOrRoot(t *testing.T) {
	values := [][]byte{[]byte("leaf 1"), []byte("leaf 2")}
	tree, err := BuildTree(values)
	require.NoError(t, err)

	proof, err := tree.GenerateProof(0)
	require.NoError(t, err)

	ok, err := VerifyProof([]byte("wrong leaf"), proof, tree.Root())
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = VerifyProof([]byte("leaf 1"), proof, xcrypto.Blake3([]byte("wrong root")))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGenerateProofForValueFindsLeaf(t *testing.T) {
	values := [][]byte{[]byte("leaf 1"), []byte("leaf 2")}
	tree, err := BuildTree(values)
	require.NoError(t, err)

	proof, err := tree.GenerateProofForValue([]byte("leaf 2"))
	require.NoError(t, err)
	require.Equal(t, 1, proof.LeafIndex)

	ok, err := VerifyProof([]byte("leaf 2"), proof, tree.Root())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGenerateProofForValueReturnsErrLeafNotFound(t *testing.T) {
	tree, err := BuildTree([][]byte{[]byte("only value")})
	require.NoError(t, err)

	_, err = tree.GenerateProofForValue([]byte("absent"))
	require.ErrorIs(t, err, ErrLeafNotFound)
}

func TestBuildTreeRejectsEmptyInput(t *testing.T) {
	_, err := BuildTree(nil)
	require.ErrorIs(t, err, ErrEmptyTree)
}
