package shaders

// ParticleUpdate advances particle positions and velocities one timestep
// under a central gravitational field. One invocation per particle,
// 64 invocations per workgroup.
const ParticleUpdate = `
#version 430 core

layout(local_size_x = 64) in;

struct Particle {
    vec4 position; // xyz used, w padding
    vec4 velocity;
};

layout(std430, binding = 0) buffer Particles {
    Particle particles[];
};

layout(std140, binding = 1) uniform Params {
    float dt;
    float gm;
    uint particle_count;
};

void main() {
    uint i = gl_GlobalInvocationID.x;
    if (i >= particle_count) {
        return;
    }

    vec3 pos = particles[i].position.xyz;
    vec3 vel = particles[i].velocity.xyz;

    // Central-mass field: a = -GM / r^2 toward the origin. The floor on r
    // keeps particles passing through the center from blowing up.
    float r = max(length(pos), 1.0);
    vec3 accel = -(gm / (r * r)) * (pos / r);

    vel += accel * dt;
    pos += vel * dt;

    particles[i].position.xyz = pos;
    particles[i].velocity.xyz = vel;
}
`

// PointVert projects each particle through the camera matrix and emits a
// point primitive. Reads the particle buffer directly; no vertex attributes.
const PointVert = `
#version 430 core

layout(std140, binding = 0) uniform CameraData {
    mat4 view_proj;
};

struct Particle {
    vec4 position;
    vec4 velocity;
};

layout(std430, binding = 1) readonly buffer Particles {
    Particle particles[];
};

out float speed;

void main() {
    Particle p = particles[gl_VertexID];
    gl_Position = view_proj * vec4(p.position.xyz, 1.0);
    gl_PointSize = 2.0;
    speed = length(p.velocity.xyz);
}
`

// PointFrag colors points by speed, cold to hot.
const PointFrag = `
#version 430 core

in float speed;
out vec4 frag_color;

void main() {
    float t = clamp(speed / 300.0, 0.0, 1.0);
    vec3 cold = vec3(0.35, 0.5, 1.0);
    vec3 hot = vec3(1.0, 0.9, 0.6);
    frag_color = vec4(mix(cold, hot, t), 0.85);
}
`
