package keystore

import (
	"crypto/x509"
	"encoding/pem"
	"io"

	"github.com/miyakowork/template-utils-security/errors"
	"software.sslmate.com/src/go-pkcs12"
)

/* ------------------------------------------------------------------------------------------ */

// KeyStore 从 PKCS#12 文件中加载出来的密钥对与证书，返回后所有权转移给调用者。
type KeyStore struct {
	privateKey  interface{}
	certificate *x509.Certificate
	caCerts     []*x509.Certificate
}

func (ks *KeyStore) PrivateKey() interface{} {
	return ks.privateKey
}

func (ks *KeyStore) Certificate() *x509.Certificate {
	return ks.certificate
}

func (ks *KeyStore) CACerts() []*x509.Certificate {
	return ks.caCerts
}

/* ------------------------------------------------------------------------------------------ */

// ReadKeyStore 从数据流中读取密钥库，用密码解锁。Go 的生态中没有 JKS，密钥库的载体是
// PKCS#12，所以 typ 只支持 "PKCS12"（或 "P12"）。
func ReadKeyStore(typ string, in io.Reader, password string) (*KeyStore, error) {
	switch typ {
	case "PKCS12", "pkcs12", "P12", "p12":
	default:
		return nil, errors.NewErrorf("key store type \"%s\" is not recognized, the supported types contain [PKCS12, P12]", typ)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.NewErrorf("cannot read key store stream, the error is \"%s\"", err.Error())
	}

	privateKey, certificate, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, errors.NewErrorf("cannot decode PKCS#12 key store, the error is \"%s\"", err.Error())
	}

	return &KeyStore{
		privateKey:  privateKey,
		certificate: certificate,
		caCerts:     caCerts,
	}, nil
}

// ReadPKCS12KeyStore 读取 PKCS#12 密钥库。
func ReadPKCS12KeyStore(in io.Reader, password string) (*KeyStore, error) {
	return ReadKeyStore("PKCS12", in, password)
}

/* ------------------------------------------------------------------------------------------ */

// ReadCertificate 从数据流中读取证书，typ 只支持 "X.509"（或 "X509"），数据可以是 PEM
// 编码的，也可以是原始的 DER 编码。
func ReadCertificate(typ string, in io.Reader) (*x509.Certificate, error) {
	switch typ {
	case "X.509", "X509", "x509":
	default:
		return nil, errors.NewErrorf("certificate type \"%s\" is not recognized, the supported types contain [X.509]", typ)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.NewErrorf("cannot read certificate stream, the error is \"%s\"", err.Error())
	}

	if block, _ := pem.Decode(data); block != nil {
		data = block.Bytes
	}

	certificate, err := x509.ParseCertificate(data)
	if err != nil {
		return nil, errors.NewErrorf("cannot parse X.509 certificate, the error is \"%s\"", err.Error())
	}
	return certificate, nil
}

// ReadX509Certificate 读取 X.509 证书。
func ReadX509Certificate(in io.Reader) (*x509.Certificate, error) {
	return ReadCertificate("X.509", in)
}
