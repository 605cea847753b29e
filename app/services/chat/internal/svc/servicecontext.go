package svc

import (
	"context"
	"strings"
	"time"

	embeddingark "github.com/cloudwego/eino-ext/components/embedding/ark"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"BrewMasterAI/app/dal/cart"
	chatdal "BrewMasterAI/app/dal/chat"
	"BrewMasterAI/app/dal/order"
	"BrewMasterAI/app/dal/product"
	chatagent "BrewMasterAI/app/services/chat/internal/agent/chat"
	"BrewMasterAI/app/services/chat/internal/agent/orderflow"
	"BrewMasterAI/app/services/chat/internal/config"
	"BrewMasterAI/app/services/chat/internal/generation"
	"BrewMasterAI/app/services/chat/internal/rag"
	"BrewMasterAI/app/services/chat/internal/store"
)

type ServiceContext struct {
	Config config.Config

	DB    sqlx.SqlConn
	Redis *redis.Redis

	Products   product.ProductsModel
	Carts      cart.CartsModel
	CartItems  cart.CartItemsModel
	Orders     order.OrdersModel
	OrderItems order.OrderItemsModel
	Sessions   chatdal.ChatSessionsModel
	Messages   chatdal.ChatMessagesModel

	ChatModel *ark.ChatModel
	ESClient  *elasticsearch.Client
	Embedder  *embeddingark.Embedder

	AsynqClient *asynq.Client
	KafkaWriter *kafka.Writer

	History *store.HistoryStore
	Agent   *chatagent.Agent
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)

	conn := sqlx.MustNewConn(c.MysqlConf)
	sc := &ServiceContext{
		Config:     c,
		DB:         conn,
		Redis:      redis.MustNewRedis(c.RedisConf),
		Products:   product.NewProductsModel(conn, c.CacheConf),
		Carts:      cart.NewCartsModel(conn, c.CacheConf),
		CartItems:  cart.NewCartItemsModel(conn, c.CacheConf),
		Orders:     order.NewOrdersModel(conn, c.CacheConf),
		OrderItems: order.NewOrderItemsModel(conn, c.CacheConf),
		Sessions:   chatdal.NewChatSessionsModel(conn, c.CacheConf),
		Messages:   chatdal.NewChatMessagesModel(conn, c.CacheConf),
	}

	if c.ChatModel.Model != "" && c.ChatModel.APIKey != "" {
		cm, err := ark.NewChatModel(context.Background(), &ark.ChatModelConfig{
			BaseURL: c.ChatModel.BaseUrl,
			APIKey:  c.ChatModel.APIKey,
			Model:   c.ChatModel.Model,
		})
		if err != nil {
			logx.Errorw("init ark chat model failed", logx.Field("err", err))
		} else {
			sc.ChatModel = cm
			logx.Infow("ark chat model initialized")
		}
	} else {
		logx.Infow("chat model disabled, missing model or api key")
	}

	if c.Embedding.Model != "" && c.Embedding.APIKey != "" {
		emb, err := embeddingark.NewEmbedder(context.Background(), &embeddingark.EmbeddingConfig{
			BaseURL: c.Embedding.BaseUrl,
			APIKey:  c.Embedding.APIKey,
			Model:   c.Embedding.Model,
		})
		if err != nil {
			logx.Errorw("init embedding model failed", logx.Field("err", err))
		} else {
			sc.Embedder = emb
			logx.Infow("embedding model initialized", logx.Field("model", c.Embedding.Model))
		}
	} else {
		logx.Infow("embedding client disabled, missing model or api key")
	}

	if len(c.ElasticConf.Addresses) > 0 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: c.ElasticConf.Addresses,
			Username:  c.ElasticConf.Username,
			Password:  c.ElasticConf.Password,
		})
		if err != nil {
			logx.Errorw("init elasticsearch client failed", logx.Field("err", err))
		} else {
			sc.ESClient = client
			logx.Infow("elasticsearch client initialized", logx.Field("addresses", c.ElasticConf.Addresses))
		}
	} else {
		logx.Infow("elasticsearch client disabled, no addresses configured")
	}

	if c.AsynqConf.Addr != "" {
		sc.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: c.AsynqConf.Addr})
	}

	// Reusable Kafka writer to reduce per-send overhead and latency
	if len(c.KafkaConf.Broker) > 0 && c.KafkaConf.OrderTopic != "" {
		sc.KafkaWriter = &kafka.Writer{
			Addr:                   kafka.TCP(c.KafkaConf.Broker...),
			Topic:                  c.KafkaConf.OrderTopic,
			RequiredAcks:           kafka.RequireOne,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           5 * time.Millisecond,
		}
	}

	cartStore := store.NewCartStore(sc.Carts, sc.CartItems, sc.Products)
	orderStore := store.NewOrderStore(sc.DB, sc.Orders, sc.OrderItems)
	catalog := store.NewCatalog(sc.Products)
	processor := orderflow.NewProcessor(cartStore, orderStore, catalog)

	var emb embedding.Embedder
	if sc.Embedder != nil {
		emb = sc.Embedder
	}
	retriever := rag.NewProductRetriever(sc.ESClient, emb, sc.ProductIndexName())
	generator := generation.NewArkGenerator(sc.ChatModel)

	sc.History = store.NewHistoryStore(sc.Sessions, sc.Messages)
	sc.Agent = chatagent.NewAgent(retriever, generator, processor, catalog)

	return sc
}

func (s *ServiceContext) ProductIndexName() string {
	if idx := strings.TrimSpace(s.Config.ElasticConf.IndexName); idx != "" {
		return idx
	}
	return "products"
}

func (s *ServiceContext) HistoryLimit() int64 {
	if s.Config.HistoryLimit > 0 {
		return s.Config.HistoryLimit
	}
	return 50
}
