package chain

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorusnet/discovery-indexer/internal/domain"
)

var testContract = common.HexToAddress("0x7e4a00000000000000000000000000000000c0de")

func packManageEntity(t *testing.T, userID uint32, entityType string, entityID uint32, action, metadata string, nonce [32]byte, sig []byte) []byte {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(manageEntityABI))
	require.NoError(t, err)
	data, err := parsed.Pack("manageEntity", userID, entityType, entityID, action, metadata, nonce, sig)
	require.NoError(t, err)
	return data
}

func calldataTx(to *common.Address, data []byte) *types.Transaction {
	if to == nil {
		return types.NewContractCreation(0, big.NewInt(0), 100_000, big.NewInt(1), data)
	}
	return types.NewTransaction(0, *to, big.NewInt(0), 100_000, big.NewInt(1), data)
}

func TestDecode_RoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey)

	nonce := [32]byte{1, 2, 3}
	metadata := `{"cid": "QmT", "data": {"title": "Night Drive"}}`
	sig, err := SignManageEntity(crypto.FromECDSA(key), 3_000_001, "Track", 2_000_001, "Create", metadata, nonce)
	require.NoError(t, err)

	dec, err := NewCalldataDecoder(testContract)
	require.NoError(t, err)

	tx := calldataTx(&testContract, packManageEntity(t, 3_000_001, "Track", 2_000_001, "Create", metadata, nonce, sig))
	entityTx, ok, err := dec.Decode(tx, 4)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, tx.Hash().Hex(), entityTx.TxHash)
	assert.Equal(t, 4, entityTx.TxIndex)
	assert.Equal(t, int32(3_000_001), entityTx.UserID)
	assert.Equal(t, domain.KindTrack, entityTx.Kind)
	assert.Equal(t, int32(2_000_001), entityTx.EntityID)
	assert.Equal(t, domain.ActionCreate, entityTx.Action)
	assert.Equal(t, metadata, entityTx.Metadata)
	assert.Equal(t, domain.NormalizeWallet(wallet.Hex()), entityTx.Signer)
}

func TestDecode_SignatureWith27Offset(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey)

	var nonce [32]byte
	sig, err := SignManageEntity(crypto.FromECDSA(key), 3_000_001, "User", 3_000_001, "Follow", "", nonce)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	dec, err := NewCalldataDecoder(testContract)
	require.NoError(t, err)

	tx := calldataTx(&testContract, packManageEntity(t, 3_000_001, "User", 3_000_001, "Follow", "", nonce, sig))
	entityTx, ok, err := dec.Decode(tx, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.NormalizeWallet(wallet.Hex()), entityTx.Signer)
}

func TestDecode_SkipsForeignTransactions(t *testing.T) {
	dec, err := NewCalldataDecoder(testContract)
	require.NoError(t, err)

	other := common.HexToAddress("0x000000000000000000000000000000000000beef")
	tests := []struct {
		name string
		tx   *types.Transaction
	}{
		{"different contract", calldataTx(&other, []byte{1, 2, 3, 4, 5})},
		{"contract creation", calldataTx(nil, []byte{1, 2, 3, 4, 5})},
		{"calldata too short", calldataTx(&testContract, []byte{1, 2})},
		{"unknown method", calldataTx(&testContract, []byte{0xde, 0xad, 0xbe, 0xef, 0x00})},
		{"plain transfer", calldataTx(&testContract, nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entityTx, ok, err := dec.Decode(tc.tx, 0)
			assert.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, entityTx)
		})
	}
}

func TestDecode_GarbledArgumentsError(t *testing.T) {
	dec, err := NewCalldataDecoder(testContract)
	require.NoError(t, err)

	// right method selector, junk arguments
	var nonce [32]byte
	good := packManageEntity(t, 1, "User", 1, "Create", "", nonce, make([]byte, 65))
	garbled := append([]byte(nil), good[:4]...)
	garbled = append(garbled, 0xff, 0xff)

	_, ok, err := dec.Decode(calldataTx(&testContract, garbled), 0)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDecode_BadSignatureLength(t *testing.T) {
	dec, err := NewCalldataDecoder(testContract)
	require.NoError(t, err)

	var nonce [32]byte
	data := packManageEntity(t, 1, "User", 1, "Create", "", nonce, []byte{1, 2, 3})
	_, ok, err := dec.Decode(calldataTx(&testContract, data), 0)
	assert.Error(t, err)
	assert.False(t, ok)
}
