package keystore

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// ============================================================================
//                              JSON 结构
// ============================================================================

// fileJSON 解码用结构，指针字段用于区分缺失与零值
type fileJSON struct {
	Version *int        `json:"version"`
	Crypto  *cryptoJSON `json:"crypto" validate:"required"`
}

type cryptoJSON struct {
	Cipher       *string           `json:"cipher" validate:"required"`
	CipherParams *cipherParamsJSON `json:"cipherparams" validate:"required"`
	Ciphertext   *string           `json:"ciphertext"`
	KDF          *string           `json:"kdf" validate:"required"`
	KDFParams    *kdfParamsJSON    `json:"kdfparams" validate:"required"`
	MAC          *string           `json:"mac" validate:"required,hexadecimal"`
}

type cipherParamsJSON struct {
	IV *string `json:"iv" validate:"required,hexadecimal"`
}

type kdfParamsJSON struct {
	DKLen *int    `json:"dkLen" validate:"required,min=32"`
	Salt  *string `json:"salt" validate:"required,hexadecimal"`
	C     *int    `json:"c" validate:"required,min=1"`
	PRF   *string `json:"prf" validate:"required"`
}

// exportJSON 导出用结构，字段顺序即输出顺序
type exportJSON struct {
	Version int              `json:"version"`
	Crypto  exportCryptoJSON `json:"crypto"`
}

type exportCryptoJSON struct {
	Cipher       string             `json:"cipher"`
	KDF          string             `json:"kdf"`
	CipherParams exportCipherParams `json:"cipherparams"`
	Ciphertext   string             `json:"ciphertext"`
	KDFParams    exportKDFParams    `json:"kdfparams"`
	MAC          string             `json:"mac"`
}

type exportCipherParams struct {
	IV string `json:"iv"`
}

type exportKDFParams struct {
	DKLen int    `json:"dkLen"`
	Salt  string `json:"salt"`
	C     int    `json:"c"`
	PRF   string `json:"prf"`
}

// ============================================================================
//                              字段校验
// ============================================================================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 错误中使用 JSON 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseFile 解析 JSON 并校验字段存在与类型
func parseFile(data []byte) (*fileJSON, error) {
	var f fileJSON
	if err := json.Unmarshal(data, &f); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, types.NewBadKeyError("Decrypt", types.ErrFieldType,
				fmt.Sprintf("expected key '%s' to be %s", typeErr.Field, describeKind(typeErr.Type)))
		}
		return nil, types.NewBadKeyError("Decrypt", err, "malformed keystore JSON")
	}
	if f.Version == nil {
		return nil, types.NewBadKeyError("Decrypt", types.ErrMissingField, "missing key 'version'")
	}
	return &f, nil
}

// validateFields 校验 crypto 段
func validateFields(f *fileJSON) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return types.NewBadKeyError("Decrypt", err, "")
	}

	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	switch {
	case fe.Tag() == "required" && fe.Kind() == reflect.Ptr:
		return missingKey(field)
	case fe.Tag() == "hexadecimal":
		return types.NewBadKeyError("Decrypt", types.ErrInvalidHex, fmt.Sprintf("expected key '%s' to be hex", field))
	default:
		return types.NewBadKeyError("Decrypt", types.ErrInvalidParameter,
			fmt.Sprintf("invalid value for key '%s': %v", field, fe.Value()))
	}
}

func missingKey(field string) error {
	return types.NewBadKeyError("Decrypt", types.ErrMissingField, fmt.Sprintf("missing key '%s'", field))
}

// fieldPath 去掉命名空间中的根类型名
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a " + t.Kind().String()
	}
}

// decodeHex 解码十六进制字段，错误中带上字段路径
func decodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, types.NewBadKeyError("Decrypt", errors.Join(types.ErrInvalidHex, err),
			fmt.Sprintf("expected key '%s' to be hex", field))
	}
	return b, nil
}
