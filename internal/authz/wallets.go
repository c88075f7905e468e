package authz

import (
	"crypto/ed25519"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chorusnet/discovery-indexer/internal/domain"
)

// walletProofMessage is the text a user signs to prove control of an
// external wallet they associate with their profile
func walletProofMessage(userID int32) string {
	return fmt.Sprintf("ChorusUserID:%d", userID)
}

// VerifyEVMWalletProof checks a personal-sign signature over the wallet
// proof message against an EVM wallet address
func VerifyEVMWalletProof(wallet string, userID int32, signature string) error {
	sig := common.FromHex(signature)
	if len(sig) != crypto.SignatureLength {
		return domain.Rejectf(domain.RejectInvalidField,
			"associated wallet %s: signature must be %d bytes", wallet, crypto.SignatureLength)
	}
	// geth expects the recovery id in the low range
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}

	hash := accounts.TextHash([]byte(walletProofMessage(userID)))
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return domain.Rejectf(domain.RejectInvalidField,
			"associated wallet %s: signature recovery failed", wallet)
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if domain.NormalizeWallet(recovered.Hex()) != domain.NormalizeWallet(wallet) {
		return domain.Rejectf(domain.RejectInvalidField,
			"associated wallet %s: signature signed by %s", wallet, recovered.Hex())
	}
	return nil
}

// VerifySolWalletProof checks an ed25519 signature over the wallet proof
// message against a base58-encoded Solana public key
func VerifySolWalletProof(wallet string, userID int32, signature string) error {
	pub := base58.Decode(wallet)
	if len(pub) != ed25519.PublicKeySize {
		return domain.Rejectf(domain.RejectInvalidField,
			"associated wallet %s: not a valid ed25519 public key", wallet)
	}
	sig := base58.Decode(signature)
	if len(sig) != ed25519.SignatureSize {
		return domain.Rejectf(domain.RejectInvalidField,
			"associated wallet %s: not a valid ed25519 signature", wallet)
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), []byte(walletProofMessage(userID)), sig) {
		return domain.Rejectf(domain.RejectInvalidField,
			"associated wallet %s: signature verification failed", wallet)
	}
	return nil
}
