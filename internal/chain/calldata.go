package chain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chorusnet/discovery-indexer/internal/domain"
)

// manageEntityABI describes the single entrypoint of the entity manager
// contract. Transactions are relayed, so the acting wallet is recovered from
// subjectSig rather than taken from the transaction sender.
const manageEntityABI = `[{
	"name": "manageEntity",
	"type": "function",
	"inputs": [
		{"name": "userId", "type": "uint32"},
		{"name": "entityType", "type": "string"},
		{"name": "entityId", "type": "uint32"},
		{"name": "action", "type": "string"},
		{"name": "metadata", "type": "string"},
		{"name": "nonce", "type": "bytes32"},
		{"name": "subjectSig", "type": "bytes"}
	],
	"outputs": []
}]`

// calldataDecoder decodes manageEntity calldata addressed to one contract
type calldataDecoder struct {
	contract common.Address
	abi      abi.ABI
}

// NewCalldataDecoder creates a Decoder for the entity manager contract at
// the given address
func NewCalldataDecoder(contract common.Address) (Decoder, error) {
	parsed, err := abi.JSON(strings.NewReader(manageEntityABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse entity manager ABI: %w", err)
	}
	return &calldataDecoder{contract: contract, abi: parsed}, nil
}

func (d *calldataDecoder) Decode(tx *types.Transaction, index int) (*domain.EntityTx, bool, error) {
	if tx.To() == nil || *tx.To() != d.contract {
		return nil, false, nil
	}
	data := tx.Data()
	if len(data) < 4 {
		return nil, false, nil
	}
	method, err := d.abi.MethodById(data[:4])
	if err != nil || method.Name != "manageEntity" {
		return nil, false, nil
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, false, fmt.Errorf("failed to unpack calldata: %w", err)
	}
	if len(args) != 7 {
		return nil, false, fmt.Errorf("unexpected argument count %d", len(args))
	}

	userID, ok := args[0].(uint32)
	if !ok {
		return nil, false, fmt.Errorf("userId is not uint32")
	}
	entityType, _ := args[1].(string)
	entityID, ok := args[2].(uint32)
	if !ok {
		return nil, false, fmt.Errorf("entityId is not uint32")
	}
	action, _ := args[3].(string)
	metadata, _ := args[4].(string)
	nonce, ok := args[5].([32]byte)
	if !ok {
		return nil, false, fmt.Errorf("nonce is not bytes32")
	}
	subjectSig, ok := args[6].([]byte)
	if !ok {
		return nil, false, fmt.Errorf("subjectSig is not bytes")
	}

	signer, err := recoverSigner(method.Inputs[:6], userID, entityType, entityID, action, metadata, nonce, subjectSig)
	if err != nil {
		return nil, false, fmt.Errorf("failed to recover signer: %w", err)
	}

	return &domain.EntityTx{
		TxHash:   tx.Hash().Hex(),
		TxIndex:  index,
		UserID:   int32(userID), //nolint:gosec,G115
		Kind:     domain.EntityKind(entityType),
		EntityID: int32(entityID), //nolint:gosec,G115
		Action:   domain.Action(action),
		Metadata: metadata,
		Signer:   domain.NormalizeWallet(signer.Hex()),
	}, true, nil
}

// recoverSigner rebuilds the signed digest from the call arguments and
// recovers the wallet behind subjectSig. The digest is the keccak hash of
// the ABI encoding of every argument except the signature itself, wrapped
// in the personal-sign prefix.
func recoverSigner(fields abi.Arguments, userID uint32, entityType string, entityID uint32, action, metadata string, nonce [32]byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature has %d bytes, want %d", len(sig), crypto.SignatureLength)
	}

	encoded, err := fields.Pack(userID, entityType, entityID, action, metadata, nonce)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to encode signed fields: %w", err)
	}
	digest := crypto.Keccak256(encoded)

	// normalize the recovery id, wallets emit 27/28
	recovered := make([]byte, crypto.SignatureLength)
	copy(recovered, sig)
	if recovered[crypto.RecoveryIDOffset] >= 27 {
		recovered[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(digest), recovered)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// SignManageEntity produces a subjectSig over the given call arguments. The
// indexer never signs anything in production; this mirrors recoverSigner for
// tools and tests.
func SignManageEntity(key []byte, userID uint32, entityType string, entityID uint32, action, metadata string, nonce [32]byte) ([]byte, error) {
	parsed, err := abi.JSON(strings.NewReader(manageEntityABI))
	if err != nil {
		return nil, err
	}
	fields := parsed.Methods["manageEntity"].Inputs[:6]

	encoded, err := fields.Pack(userID, entityType, entityID, action, metadata, nonce)
	if err != nil {
		return nil, err
	}
	digest := crypto.Keccak256(encoded)

	priv, err := crypto.ToECDSA(key)
	if err != nil {
		return nil, err
	}
	return crypto.Sign(accounts.TextHash(digest), priv)
}
