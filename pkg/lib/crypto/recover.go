package crypto

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// ============================================================================
//                              ECDSA 公钥恢复
// ============================================================================

// RecoverPublicKey 从 (r, s, recoveryID) 和消息哈希恢复 secp256k1 公钥
//
// 按 SEC1 4.1.6 计算：
//
//	R = decompress(x = r, odd = recoveryID & 1)
//	e = OS2IP(hash) mod n
//	Q = [r⁻¹·s]R + [r⁻¹·(−e)]G
//
// 参数：
//   - recoveryID: 只接受 0 或 1
//   - r, s: 签名分量
//   - hash: 消息哈希（通常是 Keccak256(message)）
//
// 返回：
//   - []byte: 33 字节压缩公钥
//   - bool: 恢复失败（R 无效、r/s 非正、Q 为无穷远点）时为 false
//   - error: 仅当 recoveryID 非法时返回 CryptoError
func RecoverPublicKey(recoveryID int, r, s *big.Int, hash []byte) ([]byte, bool, error) {
	if recoveryID != 0 && recoveryID != 1 {
		return nil, false, types.NewCryptoError("RecoverPublicKey", types.ErrInvalidRecoveryID,
			fmt.Sprintf("got %d", recoveryID))
	}
	if r == nil || s == nil || r.Sign() <= 0 || s.Sign() <= 0 {
		return nil, false, nil
	}
	if r.BitLen() > 256 {
		return nil, false, nil
	}

	curveN := secp256k1.Params().N

	// R 的 x 坐标就是 r（j = 0），超出域素数时无效
	var rx, ry secp256k1.FieldVal
	if overflow := rx.SetByteSlice(r.FillBytes(make([]byte, 32))); overflow {
		return nil, false, nil
	}
	if !secp256k1.DecompressY(&rx, recoveryID&1 == 1, &ry) {
		return nil, false, nil
	}
	ry.Normalize()

	// secp256k1 余因子为 1，曲线上的点阶都是 n，[n]R == O 自动成立
	var pointR secp256k1.JacobianPoint
	pointR.X.Set(&rx)
	pointR.Y.Set(&ry)
	pointR.Z.SetInt(1)

	rInv := scalarModN(r, curveN)
	if rInv.IsZero() {
		return nil, false, nil
	}
	rInv.InverseNonConst()

	// s ≡ 0 (mod n) 时 u2 为零，Q 退化为 u1·G
	sMod := scalarModN(s, curveN)

	e := scalarModN(new(big.Int).SetBytes(hash), curveN)

	// u1 = -e·r⁻¹, u2 = s·r⁻¹
	u1 := new(secp256k1.ModNScalar).NegateVal(e).Mul(rInv)
	u2 := new(secp256k1.ModNScalar).Mul2(sMod, rInv)

	var p1, p2, q secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(u1, &p1)
	secp256k1.ScalarMultNonConst(u2, &pointR, &p2)
	secp256k1.AddNonConst(&p1, &p2, &q)

	if (q.X.IsZero() && q.Y.IsZero()) || q.Z.IsZero() {
		return nil, false, nil
	}
	q.ToAffine()

	return secp256k1.NewPublicKey(&q.X, &q.Y).SerializeCompressed(), true, nil
}

// scalarModN 将非负整数约简到 [0, n)
func scalarModN(v, n *big.Int) *secp256k1.ModNScalar {
	reduced := new(big.Int).Mod(v, n)
	var out secp256k1.ModNScalar
	out.SetByteSlice(reduced.FillBytes(make([]byte, 32)))
	return &out
}
