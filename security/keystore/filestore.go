package keystore

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/miyakowork/template-utils-security/common/mlog"
	"github.com/miyakowork/template-utils-security/errors"
	"github.com/miyakowork/template-utils-security/security/utils"
)

/* ------------------------------------------------------------------------------------------ */

const (
	suffixKey = "key"
	suffixSK  = "sk"
	suffixPK  = "pk"
)

/* ------------------------------------------------------------------------------------------ */

// FileStore 把密钥以 PEM 文件的形式存储在一个目录中，文件名形如 "<hex ski>_<suffix>"，
// 后缀 sk、pk、key 分别表示私钥、公钥和对称密钥。
type FileStore struct {
	path     string
	readOnly bool
	logger   mlog.Logger
	mutex    *sync.Mutex
}

func NewFileStore(path string, readOnly bool) (*FileStore, error) {
	if len(path) == 0 {
		return nil, errors.NewError("the file path to store the keys is not specified")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.MkdirAll(path, os.FileMode(0755)); err != nil {
			return nil, errors.NewErrorf("cannot create a directory for key store at \"%s\", the error is \"%s\"", path, err.Error())
		}
	}

	return &FileStore{
		path:     path,
		readOnly: readOnly,
		logger:   mlog.GetLogger("keystore", mlog.InfoLevel),
		mutex:    &sync.Mutex{},
	}, nil
}

func (fs *FileStore) ReadOnly() bool {
	return fs.readOnly
}

/* ------------------------------------------------------------------------------------------ */

// StoreSymmetricKey 存储对称密钥，返回密钥的主体标识符（密钥字节的 SHA-256 哈希值）。
func (fs *FileStore) StoreSymmetricKey(algorithm string, key []byte) ([]byte, error) {
	if fs.readOnly {
		return nil, errors.NewError("the read-only key store cannot be overwritten")
	}
	if len(key) == 0 {
		return nil, errors.NewError("invalid key, nil key")
	}

	ski := computeSKI(key)
	if err := fs.write(ski, suffixKey, utils.SymmetricKeyToPEM(algorithm, key)); err != nil {
		return nil, errors.NewErrorf("cannot store the \"%s\" key, the error is \"%s\"", algorithm, err.Error())
	}
	return ski, nil
}

// StorePrivateKey 以 PKCS#8 PEM 的形式存储私钥，返回密钥的主体标识符。
func (fs *FileStore) StorePrivateKey(privateKey interface{}) ([]byte, error) {
	if fs.readOnly {
		return nil, errors.NewError("the read-only key store cannot be overwritten")
	}

	raw, err := utils.PrivateKeyToPEM(privateKey)
	if err != nil {
		return nil, errors.NewErrorf("cannot store the private key, the error is \"%s\"", err.Error())
	}

	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, errors.NewErrorf("cannot store the private key, the error is \"%s\"", err.Error())
	}

	ski := computeSKI(der)
	if err = fs.write(ski, suffixSK, raw); err != nil {
		return nil, errors.NewErrorf("cannot store the private key, the error is \"%s\"", err.Error())
	}
	return ski, nil
}

// StorePublicKey 以 PKIX PEM 的形式存储公钥，返回密钥的主体标识符。
func (fs *FileStore) StorePublicKey(publicKey interface{}) ([]byte, error) {
	if fs.readOnly {
		return nil, errors.NewError("the read-only key store cannot be overwritten")
	}

	raw, err := utils.PublicKeyToPEM(publicKey)
	if err != nil {
		return nil, errors.NewErrorf("cannot store the public key, the error is \"%s\"", err.Error())
	}

	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, errors.NewErrorf("cannot store the public key, the error is \"%s\"", err.Error())
	}

	ski := computeSKI(der)
	if err = fs.write(ski, suffixPK, raw); err != nil {
		return nil, errors.NewErrorf("cannot store the public key, the error is \"%s\"", err.Error())
	}
	return ski, nil
}

// GetKey 根据密钥的主体标识符取回密钥，根据文件后缀，返回值可能是私钥、公钥或者对称密钥
// 的字节切片。
func (fs *FileStore) GetKey(ski []byte) (interface{}, error) {
	if len(ski) == 0 {
		return nil, errors.NewError("invalid subject key identifier, nil subject key identifier")
	}

	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	suffix := fs.getSuffix(hex.EncodeToString(ski))
	keyPath := filepath.Join(fs.path, hex.EncodeToString(ski)+"_"+suffix)

	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, errors.NewErrorf("cannot get the key \"%s\", the error is \"%s\"", keyPath, err.Error())
	}

	switch suffix {
	case suffixSK:
		privateKey, err := utils.PEMToPrivateKey(raw)
		if err != nil {
			return nil, errors.NewErrorf("cannot get the private key at \"%s\", the error is \"%s\"", keyPath, err.Error())
		}
		return privateKey, nil
	case suffixPK:
		publicKey, err := utils.PEMToPublicKey(raw)
		if err != nil {
			return nil, errors.NewErrorf("cannot get the public key at \"%s\", the error is \"%s\"", keyPath, err.Error())
		}
		return publicKey, nil
	case suffixKey:
		key, err := utils.PEMToSymmetricKey(raw)
		if err != nil {
			return nil, errors.NewErrorf("cannot get the symmetric key at \"%s\", the error is \"%s\"", keyPath, err.Error())
		}
		return key, nil
	default:
		return nil, errors.NewErrorf("cannot search for the key at \"%s\"", keyPath)
	}
}

/* ------------------------------------------------------------------------------------------ */

func (fs *FileStore) write(ski []byte, suffix string, raw []byte) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	keyPath := filepath.Join(fs.path, hex.EncodeToString(ski)+"_"+suffix)
	if err := os.WriteFile(keyPath, raw, os.FileMode(0600)); err != nil {
		fs.logger.Errorf("cannot write key file \"%s\", the error is \"%s\"", keyPath, err.Error())
		return err
	}
	fs.logger.Debugf("key \"%s\" stored", keyPath)
	return nil
}

func (fs *FileStore) getSuffix(hexSKI string) string {
	for _, suffix := range []string{suffixSK, suffixPK, suffixKey} {
		if _, err := os.Stat(filepath.Join(fs.path, hexSKI+"_"+suffix)); err == nil {
			return suffix
		}
	}
	return ""
}

func computeSKI(raw []byte) []byte {
	hashFunc := sha256.New()
	hashFunc.Write(raw)
	return hashFunc.Sum(nil)
}
