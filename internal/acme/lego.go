package acme

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-acme/lego/v4/certcrypto"
	"github.com/go-acme/lego/v4/certificate"
	"github.com/go-acme/lego/v4/challenge/http01"
	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/registration"

	"github.com/dalbodeule/loco-gate/internal/logging"
)

// LegoConfig 는 lego 기반 ACME 발급 설정입니다.
type LegoConfig struct {
	Email   string   // ACME 계정 이메일
	Domains []string // 발급 대상 도메인 (와일드카드는 HTTP-01 로 불가)

	// CADirURL 은 ACME 디렉터리 URL 입니다. 비어 있으면 Let's Encrypt
	// production 을 사용합니다. 스테이징 테스트 시 교체하세요.
	CADirURL string

	// HTTPPort 는 HTTP-01 챌린지를 받을 포트입니다. 비어 있으면 "80".
	HTTPPort string

	// CacheDir 가 비어 있지 않으면 발급받은 인증서/키를 저장해 재기동 시
	// 재발급을 피합니다.
	CacheDir string
}

// legoUser 는 lego 가 요구하는 ACME 계정 표현입니다.
type legoUser struct {
	email string
	reg   *registration.Resource
	key   crypto.PrivateKey
}

func (u *legoUser) GetEmail() string                        { return u.email }
func (u *legoUser) GetRegistration() *registration.Resource { return u.reg }
func (u *legoUser) GetPrivateKey() crypto.PrivateKey        { return u.key }

// LegoManager 는 lego 로 발급받은 인증서를 제공하는 Manager 구현입니다.
type LegoManager struct {
	log logging.Logger

	mu   sync.RWMutex
	cert *tls.Certificate
}

// NewLegoManager 는 ACME 계정을 등록하고 도메인 인증서를 발급받습니다.
// 발급은 동기적으로 한 번 수행하며, 실패하면 에러를 반환합니다.
func NewLegoManager(cfg LegoConfig, logger logging.Logger) (*LegoManager, error) {
	if logger == nil {
		logger = logging.NewStdJSONLogger("acme")
	}
	log := logger.With(logging.Fields{"component": "acme"})

	if cfg.Email == "" {
		return nil, fmt.Errorf("acme: account email is required")
	}
	if len(cfg.Domains) == 0 {
		return nil, fmt.Errorf("acme: at least one domain is required")
	}

	m := &LegoManager{log: log}

	// 캐시에 쓸 수 있는 인증서가 있으면 네트워크 없이 바로 사용합니다.
	if cfg.CacheDir != "" {
		if cert, err := loadCachedCert(cfg.CacheDir); err == nil {
			log.Info("loaded certificate from cache", logging.Fields{
				"cache_dir": cfg.CacheDir,
				"domains":   cfg.Domains,
			})
			m.cert = cert
			return m, nil
		}
	}

	accountKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("acme: generate account key: %w", err)
	}
	user := &legoUser{email: cfg.Email, key: accountKey}

	legoCfg := lego.NewConfig(user)
	if cfg.CADirURL != "" {
		legoCfg.CADirURL = cfg.CADirURL
	}
	legoCfg.Certificate.KeyType = certcrypto.EC256

	client, err := lego.NewClient(legoCfg)
	if err != nil {
		return nil, fmt.Errorf("acme: create client: %w", err)
	}

	httpPort := cfg.HTTPPort
	if httpPort == "" {
		httpPort = "80"
	}
	if err := client.Challenge.SetHTTP01Provider(http01.NewProviderServer("", httpPort)); err != nil {
		return nil, fmt.Errorf("acme: set http-01 provider: %w", err)
	}

	user.reg, err = client.Registration.Register(registration.RegisterOptions{TermsOfServiceAgreed: true})
	if err != nil {
		return nil, fmt.Errorf("acme: register account: %w", err)
	}

	res, err := client.Certificate.Obtain(certificate.ObtainRequest{
		Domains: cfg.Domains,
		Bundle:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("acme: obtain certificate: %w", err)
	}

	cert, err := tls.X509KeyPair(res.Certificate, res.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("acme: parse obtained certificate: %w", err)
	}
	m.cert = &cert

	log.Info("certificate obtained", logging.Fields{"domains": cfg.Domains})

	if cfg.CacheDir != "" {
		if err := cacheCert(cfg.CacheDir, res.Certificate, res.PrivateKey); err != nil {
			// 캐시는 최적화일 뿐이므로 실패해도 기동은 계속합니다.
			log.Warn("failed to cache certificate", logging.Fields{"error": err.Error()})
		}
	}
	return m, nil
}

// TLSConfig 는 발급받은 인증서를 제공하는 tls.Config 를 반환합니다.
func (m *LegoManager) TLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		GetCertificate: func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
			m.mu.RLock()
			defer m.mu.RUnlock()
			if m.cert == nil {
				return nil, fmt.Errorf("acme: no certificate available")
			}
			return m.cert, nil
		},
	}
}

const (
	cachedCertFile = "cert.pem"
	cachedKeyFile  = "key.pem"
)

func loadCachedCert(dir string) (*tls.Certificate, error) {
	certPEM, err := os.ReadFile(filepath.Join(dir, cachedCertFile))
	if err != nil {
		return nil, err
	}
	keyPEM, err := os.ReadFile(filepath.Join(dir, cachedKeyFile))
	if err != nil {
		return nil, err
	}
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func cacheCert(dir string, certPEM, keyPEM []byte) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, cachedCertFile), certPEM, 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, cachedKeyFile), keyPEM, 0o600)
}
