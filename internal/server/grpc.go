package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewGRPCServer 初始化 gRPC 服务
// 目前只挂标准健康检查 (K8s livenessProbe 直接探 gRPC), 业务服务后续再注册。
func NewGRPCServer() (*grpc.Server, *health.Server) {
	s := grpc.NewServer()

	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	reflection.Register(s)
	return s, h
}
