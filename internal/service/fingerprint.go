package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprinter 负责把访客的 IP 与 User-Agent 变换为不可逆的标识。
// 所有哈希都混入服务端密钥，相同输入在进程重启后仍得到相同输出，
// 但无法从输出反推出原始 IP。
type Fingerprinter struct {
	secret string
}

// NewFingerprinter 创建 Fingerprinter，secret 为服务端持有的固定盐值。
func NewFingerprinter(secret string) *Fingerprinter {
	return &Fingerprinter{secret: secret}
}

// HashIP 计算 IP 的单向哈希，落库时只存这个值。
func (f *Fingerprinter) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(f.secret + "|ip|" + ip))
	return hex.EncodeToString(sum[:])
}

// Fingerprint 由 ipHash 与 User-Agent 派生去重指纹。
// 指纹仅作为进程内缓存键使用，永远不持久化。
func (f *Fingerprinter) Fingerprint(ipHash, userAgent string) string {
	sum := sha256.Sum256([]byte(f.secret + "|fp|" + ipHash + "|" + userAgent))
	return hex.EncodeToString(sum[:])
}
