package utils

import (
	"encoding/hex"
	"strconv"
)

func BytesToHex(bytes []byte) string {
	return hex.EncodeToString(bytes)
}

func HexToBytes(str string) ([]byte, error) {
	bytes, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// ProofGuessBytes is the pre-image checked by the puzzle: both proofs in decimal, concatenated.
func ProofGuessBytes(lastProof int64, proof int64) []byte {
	b := make([]byte, 0, 40)
	b = strconv.AppendInt(b, lastProof, 10)
	b = strconv.AppendInt(b, proof, 10)
	return b
}
