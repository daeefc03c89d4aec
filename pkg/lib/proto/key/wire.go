package key

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// fieldFunc 处理一个已解析字段
//
// BytesType 字段的值在 v 中，VarintType 字段的值在 x 中。
type fieldFunc func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error

// forEachField 遍历消息中的字段，未知字段与非 varint/bytes 类型字段跳过
func forEachField(data []byte, fn fieldFunc) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrInvalidMessage, protowire.ParseError(n))
		}
		data = data[n:]

		switch typ {
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return fmt.Errorf("%w: field %d: %v", ErrInvalidMessage, num, protowire.ParseError(m))
			}
			if err := fn(num, typ, v, 0); err != nil {
				return err
			}
			data = data[m:]
		case protowire.VarintType:
			x, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return fmt.Errorf("%w: field %d: %v", ErrInvalidMessage, num, protowire.ParseError(m))
			}
			if err := fn(num, typ, nil, x); err != nil {
				return err
			}
			data = data[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return fmt.Errorf("%w: field %d: %v", ErrInvalidMessage, num, protowire.ParseError(m))
			}
			if err := fn(num, typ, nil, 0); err != nil {
				return err
			}
			data = data[m:]
		}
	}
	return nil
}

// appendBytes 追加 length-delimited 字段（即使为空也写出，用于 oneof）
func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendMessage 追加嵌套消息字段
func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	return appendBytes(b, num, msg)
}

// appendInt64 追加 int64 字段，零值省略
func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func cloneBytes(v []byte) []byte {
	return append([]byte{}, v...)
}
