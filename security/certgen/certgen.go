// Package certgen 生成自签名的 CA 证书和由它签发的客户端/服务端证书密钥对，
// 供测试密钥库、证书读取的代码以及需要临时证书的调用者使用。
package certgen

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"time"

	"github.com/miyakowork/template-utils-security/errors"
)

/* ------------------------------------------------------------------------------------------ */

// CertKeyPair 一张证书和与之配套的私钥。
type CertKeyPair struct {
	cert     []byte            // x509 证书的 PEM 格式编码字节切片
	key      []byte            // ecdsa 私钥的 PEM 格式编码字节切片
	signer   crypto.Signer     // 自己的 ecdsa 私钥，不是签发证书的机构的私钥
	x509Cert *x509.Certificate // x509 证书
}

func (kp *CertKeyPair) Cert() []byte {
	return kp.cert
}

func (kp *CertKeyPair) Key() []byte {
	return kp.key
}

func (kp *CertKeyPair) Signer() crypto.Signer {
	return kp.signer
}

func (kp *CertKeyPair) X509Cert() *x509.Certificate {
	return kp.x509Cert
}

/* ------------------------------------------------------------------------------------------ */

// CA 自签名的证书签发机构。
type CA struct {
	keyPair       *CertKeyPair
	securityLevel int
}

// NewCA 创建自签名 CA，securityLevel 可取 256 或 384，分别对应 P-256 和 P-384 曲线。
func NewCA(securityLevel int) (*CA, error) {
	c := &CA{securityLevel: securityLevel}
	var err error
	c.keyPair, err = newCertKeyPair(securityLevel, true, false, nil, nil)
	if err != nil {
		return nil, errors.NewErrorf("failed generating CA, the error is \"%s\"", err.Error())
	}
	return c, nil
}

func (c *CA) NewIntermediateCA() (*CA, error) {
	intermediateCA := &CA{securityLevel: c.securityLevel}
	var err error
	intermediateCA.keyPair, err = newCertKeyPair(c.securityLevel, true, false, c.keyPair.Signer(), c.keyPair.X509Cert())
	if err != nil {
		return nil, errors.NewErrorf("failed generating intermediate CA, the error is \"%s\"", err.Error())
	}
	return intermediateCA, nil
}

func (c *CA) CertBytes() []byte {
	return c.keyPair.Cert()
}

func (c *CA) KeyBytes() []byte {
	return c.keyPair.Key()
}

func (c *CA) Signer() crypto.Signer {
	return c.keyPair.Signer()
}

func (c *CA) X509Cert() *x509.Certificate {
	return c.keyPair.X509Cert()
}

func (c *CA) NewClientCertKeyPair() (*CertKeyPair, error) {
	return newCertKeyPair(c.securityLevel, false, false, c.keyPair.Signer(), c.keyPair.X509Cert())
}

func (c *CA) NewServerCertKeyPair(hosts ...string) (*CertKeyPair, error) {
	return newCertKeyPair(c.securityLevel, false, true, c.keyPair.Signer(), c.keyPair.X509Cert(), hosts...)
}

/* ------------------------------------------------------------------------------------------ */

func newPrivateKey(securityLevel int) (*ecdsa.PrivateKey, []byte, error) {
	var curve elliptic.Curve
	switch securityLevel {
	case 256:
		curve = elliptic.P256()
	case 384:
		curve = elliptic.P384()
	default:
		return nil, nil, errors.NewErrorf("invalid security level, want \"256\" or \"384\", but got \"%d\"", securityLevel)
	}
	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, nil, errors.NewErrorf("failed generating ECDSA private key, the error is \"%s\"", err.Error())
	}
	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, nil, errors.NewErrorf("failed marshaling ECDSA private key, the error is \"%s\"", err.Error())
	}
	return privateKey, privateKeyBytes, nil
}

func newCertTemplate() (x509.Certificate, error) {
	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return x509.Certificate{}, errors.NewErrorf("failed generating serial number for X509 certificate template, the error is \"%s\"", err.Error())
	}

	return x509.Certificate{
		Subject:      pkix.Name{SerialNumber: serialNumber.String()},
		NotBefore:    time.Now().Add(time.Hour * (-24)),
		NotAfter:     time.Now().Add(24 * 365 * 10 * time.Hour),
		KeyUsage:     x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		SerialNumber: serialNumber,
	}, nil
}

func newCertKeyPair(securityLevel int, isCA bool, isServer bool, signer crypto.Signer, parent *x509.Certificate, hosts ...string) (*CertKeyPair, error) {
	privateKey, privateKeyBytes, err := newPrivateKey(securityLevel)
	if err != nil {
		return nil, errors.NewErrorf("failed generating certificate key pair, the error is \"%s\"", err.Error())
	}

	template, err := newCertTemplate()
	if err != nil {
		return nil, errors.NewErrorf("failed generating certificate template for certificate key pair, the error is \"%s\"", err.Error())
	}

	if isCA {
		template.IsCA = true
		template.KeyUsage |= x509.KeyUsageCertSign | x509.KeyUsageCRLSign
		template.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth}
		template.BasicConstraintsValid = true
	} else {
		template.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}
	}

	if isServer {
		template.ExtKeyUsage = append(template.ExtKeyUsage, x509.ExtKeyUsageServerAuth)
		for _, host := range hosts {
			if ip := net.ParseIP(host); ip != nil {
				template.IPAddresses = append(template.IPAddresses, ip)
			} else {
				template.DNSNames = append(template.DNSNames, host)
			}
		}
	}

	publicKeyRaw := elliptic.Marshal(privateKey.Curve, privateKey.PublicKey.X, privateKey.PublicKey.Y)
	ski := sha256.Sum256(publicKeyRaw)
	template.SubjectKeyId = ski[:]

	// 自签名证书的父证书是它自己。
	if parent == nil || signer == nil {
		parent = &template
		signer = privateKey
	}

	certRaw, err := x509.CreateCertificate(rand.Reader, &template, parent, &privateKey.PublicKey, signer)
	if err != nil {
		return nil, errors.NewErrorf("failed generating certificate, the error is \"%s\"", err.Error())
	}

	certRawPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certRaw})
	cert, err := x509.ParseCertificate(certRaw)
	if err != nil {
		return nil, errors.NewErrorf("failed parsing generated certificate, the error is \"%s\"", err.Error())
	}

	privateKeyRawPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateKeyBytes})

	return &CertKeyPair{
		key:      privateKeyRawPEM,
		cert:     certRawPEM,
		signer:   privateKey,
		x509Cert: cert,
	}, nil
}
