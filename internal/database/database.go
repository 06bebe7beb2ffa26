package database

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// Connections agrupa todos los clientes externos. Se construye una sola vez
// en main y se pasa explícitamente a quien lo necesite: acá no hay globales.
type Connections struct {
	Scylla  *gocql.Session
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
}

// Connect levanta Scylla y Redis (obligatorios) y Elastic y MinIO
// (opcionales: si fallan, la tienda sigue funcionando sin búsqueda avanzada
// ni URLs firmadas).
func Connect() *Connections {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conns := &Connections{
		Scylla:  connectScylla(),
		Redis:   connectRedis(ctx),
		Elastic: connectElastic(),
		MinIO:   connectMinIO(ctx),
	}

	log.Println("✅ Conexiones listas")
	return conns
}

func (c *Connections) Close() {
	if c.Scylla != nil {
		c.Scylla.Close()
		log.Println("🔌 Sesión ScyllaDB cerrada")
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

func connectScylla() *gocql.Session {
	hosts := strings.Split(os.Getenv("SCYLLA_HOSTS"), ",")
	keyspace := os.Getenv("SCYLLA_KEYSPACE")
	if keyspace == "" {
		keyspace = "tienda"
	}

	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 10
	cluster.ReconnectInterval = 1 * time.Second

	if user := os.Getenv("SCYLLA_USER"); user != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: user,
			Password: os.Getenv("SCYLLA_PASSWORD"),
		}
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		log.Fatalf("❌ Error conectando a ScyllaDB: %v", err)
	}

	log.Printf("✅ Conectado a ScyllaDB (keyspace '%s')", keyspace)
	return session
}

func connectRedis(ctx context.Context) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Error conectando a Redis:", err)
	}
	log.Println("✅ Conectado a Redis")
	return client
}

func connectElastic() *elasticsearch.Client {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL vacío — búsqueda avanzada deshabilitada")
		return nil
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("❌ Error creando cliente Elasticsearch:", err)
		return nil
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch no responde — búsqueda avanzada deshabilitada:", err)
		return nil
	}
	defer res.Body.Close()

	log.Println("✅ Conectado a Elasticsearch")
	return client
}

func connectMinIO(ctx context.Context) *minio.Client {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT vacío — imágenes sin URL firmada")
		return nil
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		log.Println("❌ Error conectando a MinIO:", err)
		return nil
	}

	bucket := os.Getenv("MINIO_BUCKET")
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Println("⚠️ No se pudo verificar el bucket MinIO:", err)
		return nil
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("❌ Error creando bucket MinIO:", err)
			return nil
		}
		log.Println("🪣 Bucket creado:", bucket)
	}

	log.Println("✅ Conectado a MinIO:", endpoint)
	return client
}
