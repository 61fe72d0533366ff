package redemption

import "time"

// Policy holds the per-kind lifetimes of tokens and the credentials they mint.
type Policy struct {
	DownloadTokenTTL      time.Duration
	CallTokenTTL          time.Duration
	DownloadCredentialTTL time.Duration
	CallCredentialTTL     time.Duration
}

func (p Policy) TokenTTL(k Kind) time.Duration {
	if k == KindCall {
		return p.CallTokenTTL
	}
	return p.DownloadTokenTTL
}

func (p Policy) CredentialTTL(k Kind) time.Duration {
	if k == KindCall {
		return p.CallCredentialTTL
	}
	return p.DownloadCredentialTTL
}
