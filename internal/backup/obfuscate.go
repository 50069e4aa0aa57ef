package backup

// obfuscationKey is a fixed passphrase carried over from earlier releases
// so old backup files stay readable. XOR with a fixed key is obfuscation,
// NOT encryption: it offers no confidentiality. If backups ever need real
// protection, wrap the payload in an authenticated scheme (e.g. AES-GCM)
// instead of strengthening this.
const obfuscationKey = "CTN-BROKER-BACKUP-KEY"

// obfuscate applies the reversible byte-wise transform. Calling it twice
// returns the original input.
func obfuscate(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ obfuscationKey[i%len(obfuscationKey)]
	}
	return out
}
