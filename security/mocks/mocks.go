package mocks

import (
	"encoding/hex"
	"errors"
	"sync"
)

// MockKeyStore 内存版的密钥仓库，提供给 provider 包的测试使用。
type MockKeyStore struct {
	ReadOnlyValue bool

	StoreSymmetricKeyErr error
	StorePrivateKeyErr   error
	StorePublicKeyErr    error
	GetKeyErr            error

	SKIValue []byte

	mutex sync.Mutex
	keys  map[string]interface{}
}

func (m *MockKeyStore) ReadOnly() bool {
	return m.ReadOnlyValue
}

func (m *MockKeyStore) StoreSymmetricKey(algorithm string, key []byte) ([]byte, error) {
	if m.StoreSymmetricKeyErr != nil {
		return nil, m.StoreSymmetricKeyErr
	}
	m.put(m.SKIValue, key)
	return m.SKIValue, nil
}

func (m *MockKeyStore) StorePrivateKey(privateKey interface{}) ([]byte, error) {
	if m.StorePrivateKeyErr != nil {
		return nil, m.StorePrivateKeyErr
	}
	m.put(m.SKIValue, privateKey)
	return m.SKIValue, nil
}

func (m *MockKeyStore) StorePublicKey(publicKey interface{}) ([]byte, error) {
	if m.StorePublicKeyErr != nil {
		return nil, m.StorePublicKeyErr
	}
	return m.SKIValue, nil
}

func (m *MockKeyStore) GetKey(ski []byte) (interface{}, error) {
	if m.GetKeyErr != nil {
		return nil, m.GetKeyErr
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key, exists := m.keys[hex.EncodeToString(ski)]
	if !exists {
		return nil, errors.New("key not found")
	}
	return key, nil
}

func (m *MockKeyStore) put(ski []byte, key interface{}) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.keys == nil {
		m.keys = make(map[string]interface{})
	}
	m.keys[hex.EncodeToString(ski)] = key
}
